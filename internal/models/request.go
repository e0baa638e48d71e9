package models

import "time"

// ItemRequest is a user's posted need for an item not yet listed. Items
// created to fulfill it reference the request id.
type ItemRequest struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	RequesterID int64     `json:"requester_id"`
	CreatedAt   time.Time `json:"created"`
}

// RequestView is an item request annotated with the items that fulfill it.
type RequestView struct {
	ItemRequest
	Items []Item `json:"items"`
}
