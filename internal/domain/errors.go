package domain

import "errors"

// Sentinel errors for every invariant the services and storage enforce.
// Handlers translate these to HTTP statuses, nothing retries them.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrItemNotFound    = errors.New("item not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrRequestNotFound = errors.New("request not found")

	// ErrAccessDenied covers every "actor lacks rights" case: foreign item
	// update, booking lookup by a stranger, deciding someone else's booking,
	// booking your own item. Reported as not-found at the boundary.
	ErrAccessDenied = errors.New("access denied")

	ErrItemUnavailable = errors.New("item is not available")
	ErrAlreadyDecided  = errors.New("booking status already decided")
	ErrNotReviewable   = errors.New("no finished booking, cannot review")
	ErrInvalidRange    = errors.New("start must be before end")

	ErrDuplicateEmail = errors.New("email already registered")
	// ErrUserHasRecords rejects deleting a user who still owns items or holds
	// undecided or approved bookings.
	ErrUserHasRecords = errors.New("user still owns items or holds bookings")
)
