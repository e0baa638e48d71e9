package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookingFilter(t *testing.T) {
	tests := []struct {
		raw  string
		want BookingFilter
	}{
		{"", FilterAll},
		{"ALL", FilterAll},
		{"all", FilterAll},
		{"Current", FilterCurrent},
		{"FUTURE", FilterFuture},
		{"past", FilterPast},
		{"waiting", FilterWaiting},
		{"REJECTED", FilterRejected},
	}
	for _, tt := range tests {
		got, err := ParseBookingFilter(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got)
	}
}

func TestParseBookingFilter_Unknown(t *testing.T) {
	_, err := ParseBookingFilter("SOMETIMES")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SOMETIMES")
}

func TestParseBookingStatus(t *testing.T) {
	for _, raw := range []string{"WAITING", "APPROVED", "REJECTED"} {
		got, err := ParseBookingStatus(raw)
		require.NoError(t, err)
		assert.Equal(t, BookingStatus(raw), got)
	}

	_, err := ParseBookingStatus("CANCELED")
	assert.Error(t, err)
}
