package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var annotateNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func TestAnnotateItem(t *testing.T) {
	item := Item{ID: 5, Name: "drill"}
	candidates := []Booking{
		{ID: 1, BookerID: 10, Start: annotateNow.Add(-48 * time.Hour)},
		{ID: 2, BookerID: 11, Start: annotateNow.Add(-time.Hour)},
		{ID: 3, BookerID: 12, Start: annotateNow.Add(time.Hour)},
		{ID: 4, BookerID: 13, Start: annotateNow.Add(48 * time.Hour)},
	}

	view := AnnotateItem(item, candidates, nil, annotateNow)

	// Last is the latest booking already started, next the first yet to start.
	require.NotNil(t, view.LastBooking)
	assert.Equal(t, int64(2), view.LastBooking.ID)
	assert.Equal(t, int64(11), view.LastBooking.BookerID)
	require.NotNil(t, view.NextBooking)
	assert.Equal(t, int64(3), view.NextBooking.ID)
}

func TestAnnotateItem_StartExactlyNowIsLast(t *testing.T) {
	item := Item{ID: 5}
	candidates := []Booking{{ID: 1, BookerID: 10, Start: annotateNow}}

	view := AnnotateItem(item, candidates, nil, annotateNow)

	require.NotNil(t, view.LastBooking)
	assert.Equal(t, int64(1), view.LastBooking.ID)
	assert.Nil(t, view.NextBooking)
}

func TestAnnotateItem_NoCandidates(t *testing.T) {
	view := AnnotateItem(Item{ID: 5}, nil, nil, annotateNow)

	assert.Nil(t, view.LastBooking)
	assert.Nil(t, view.NextBooking)
	// Comments always serialize as a list.
	assert.NotNil(t, view.Comments)
	assert.Empty(t, view.Comments)
}

func TestPageNormalize(t *testing.T) {
	page := Page{From: -5, Size: 0}.Normalize()
	assert.Equal(t, int64(0), page.From)
	assert.Equal(t, UnboundedSize, page.Size)

	page = Page{From: 10, Size: 20}.Normalize()
	assert.Equal(t, int64(10), page.From)
	assert.Equal(t, int64(20), page.Size)
}
