package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requester := createTestUser(t, db, "Requester", "requester@example.com")

	request := &models.ItemRequest{RequesterID: requester.ID, Description: "need a drill", CreatedAt: baseTime}
	require.NoError(t, db.CreateRequest(ctx, request))
	assert.NotZero(t, request.ID)

	found, err := db.GetRequest(ctx, request.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a drill", found.Description)
	assert.Equal(t, requester.ID, found.RequesterID)
	assert.True(t, found.CreatedAt.Equal(baseTime))

	_, err = db.GetRequest(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrRequestNotFound)
}

func TestRequestsByRequester_Ordering(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	requester := createTestUser(t, db, "Requester", "requester@example.com")

	older := &models.ItemRequest{RequesterID: requester.ID, Description: "older", CreatedAt: baseTime}
	require.NoError(t, db.CreateRequest(ctx, older))
	newer := &models.ItemRequest{RequesterID: requester.ID, Description: "newer", CreatedAt: baseTime.Add(time.Hour)}
	require.NoError(t, db.CreateRequest(ctx, newer))

	requests, err := db.RequestsByRequester(ctx, requester.ID)
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "newer", requests[0].Description)
	assert.Equal(t, "older", requests[1].Description)
}

func TestRequestsExcludingRequester(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	alice := createTestUser(t, db, "Alice", "alice@example.com")
	bob := createTestUser(t, db, "Bob", "bob@example.com")

	mine := &models.ItemRequest{RequesterID: alice.ID, Description: "mine", CreatedAt: baseTime}
	require.NoError(t, db.CreateRequest(ctx, mine))
	theirs := &models.ItemRequest{RequesterID: bob.ID, Description: "theirs", CreatedAt: baseTime.Add(time.Hour)}
	require.NoError(t, db.CreateRequest(ctx, theirs))

	requests, err := db.RequestsExcludingRequester(ctx, alice.ID, models.Page{})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "theirs", requests[0].Description)

	// Paging past the single foreign request yields nothing.
	requests, err = db.RequestsExcludingRequester(ctx, alice.ID, models.Page{From: 1, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, requests)
}
