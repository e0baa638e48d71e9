package models

import (
	"fmt"
	"strings"
	"time"
)

// BookingStatus is the closed three-value booking state. A booking starts as
// WAITING and moves exactly once to APPROVED or REJECTED.
type BookingStatus string

const (
	StatusWaiting  BookingStatus = "WAITING"
	StatusApproved BookingStatus = "APPROVED"
	StatusRejected BookingStatus = "REJECTED"
)

// ParseBookingStatus validates a stored status value.
func ParseBookingStatus(raw string) (BookingStatus, error) {
	switch BookingStatus(raw) {
	case StatusWaiting, StatusApproved, StatusRejected:
		return BookingStatus(raw), nil
	}
	return "", fmt.Errorf("unknown booking status: %s", raw)
}

type Booking struct {
	ID         int64         `json:"id"`
	ItemID     int64         `json:"item_id"`
	ItemName   string        `json:"item_name"`
	OwnerID    int64         `json:"owner_id"`
	BookerID   int64         `json:"booker_id"`
	BookerName string        `json:"booker_name"`
	Start      time.Time     `json:"start"`
	End        time.Time     `json:"end"`
	Status     BookingStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// BookingFilter scopes a booking listing query relative to "now".
type BookingFilter string

const (
	FilterAll      BookingFilter = "ALL"
	FilterCurrent  BookingFilter = "CURRENT"
	FilterFuture   BookingFilter = "FUTURE"
	FilterPast     BookingFilter = "PAST"
	FilterWaiting  BookingFilter = "WAITING"
	FilterRejected BookingFilter = "REJECTED"
)

// ParseBookingFilter maps a query parameter onto the closed filter set.
// Matching is case-insensitive; empty means ALL.
func ParseBookingFilter(raw string) (BookingFilter, error) {
	if raw == "" {
		return FilterAll, nil
	}
	for _, f := range []BookingFilter{FilterAll, FilterCurrent, FilterFuture, FilterPast, FilterWaiting, FilterRejected} {
		if strings.EqualFold(string(f), raw) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown state: %s", raw)
}
