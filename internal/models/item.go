package models

import "time"

type Item struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Available   bool      `json:"available"`
	OwnerID     int64     `json:"owner_id"`
	RequestID   *int64    `json:"request_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ItemPatch carries a partial item update. Nil fields stay untouched.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// BookingRef is the short booking annotation attached to an item view.
type BookingRef struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

// ItemView is the read-side projection of an item: the item fields plus the
// last and next booking relative to "now" and the item's comments. Computed
// on read, never stored.
type ItemView struct {
	Item
	LastBooking *BookingRef `json:"lastBooking"`
	NextBooking *BookingRef `json:"nextBooking"`
	Comments    []Comment   `json:"comments"`
}

// AnnotateItem builds the ItemView for an item from APPROVED candidate
// bookings sorted by start ascending. Last booking is the latest one whose
// window has started, next booking is the earliest one starting after now.
func AnnotateItem(item Item, candidates []Booking, comments []Comment, now time.Time) ItemView {
	view := ItemView{Item: item, Comments: comments}
	if view.Comments == nil {
		view.Comments = []Comment{}
	}

	for i := range candidates {
		b := &candidates[i]
		if !b.Start.After(now) {
			view.LastBooking = &BookingRef{ID: b.ID, BookerID: b.BookerID}
		} else if view.NextBooking == nil {
			view.NextBooking = &BookingRef{ID: b.ID, BookerID: b.BookerID}
		}
	}

	return view
}
