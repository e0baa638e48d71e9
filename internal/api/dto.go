package api

import (
	"time"

	"shareit/internal/models"
)

// Transfer objects exposed at the HTTP boundary. Entities never leak out
// directly; these mirror the wire contract of the gateway.

type userRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type userResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type itemRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Available   *bool   `json:"available"`
	RequestID   *int64  `json:"requestId"`
}

type itemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId,omitempty"`
}

type bookingRefResponse struct {
	ID       int64 `json:"id"`
	BookerID int64 `json:"bookerId"`
}

type itemViewResponse struct {
	ID          int64               `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Available   bool                `json:"available"`
	RequestID   *int64              `json:"requestId,omitempty"`
	LastBooking *bookingRefResponse `json:"lastBooking"`
	NextBooking *bookingRefResponse `json:"nextBooking"`
	Comments    []commentResponse   `json:"comments"`
}

type bookingRequest struct {
	ItemID int64      `json:"itemId"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

type bookingResponse struct {
	ID     int64         `json:"id"`
	Start  time.Time     `json:"start"`
	End    time.Time     `json:"end"`
	Status string        `json:"status"`
	Item   namedResource `json:"item"`
	Booker namedResource `json:"booker"`
}

type namedResource struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type commentRequest struct {
	Text string `json:"text"`
}

type commentResponse struct {
	ID         int64     `json:"id"`
	Text       string    `json:"text"`
	AuthorName string    `json:"authorName"`
	Created    time.Time `json:"created"`
}

type itemRequestRequest struct {
	Description string `json:"description"`
}

type itemRequestResponse struct {
	ID          int64          `json:"id"`
	Description string         `json:"description"`
	Created     time.Time      `json:"created"`
	Items       []itemResponse `json:"items"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Name: u.Name, Email: u.Email}
}

func toItemResponse(i *models.Item) itemResponse {
	return itemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}

func toItemViewResponse(v *models.ItemView) itemViewResponse {
	resp := itemViewResponse{
		ID:          v.ID,
		Name:        v.Name,
		Description: v.Description,
		Available:   v.Available,
		RequestID:   v.RequestID,
		Comments:    make([]commentResponse, 0, len(v.Comments)),
	}
	if v.LastBooking != nil {
		resp.LastBooking = &bookingRefResponse{ID: v.LastBooking.ID, BookerID: v.LastBooking.BookerID}
	}
	if v.NextBooking != nil {
		resp.NextBooking = &bookingRefResponse{ID: v.NextBooking.ID, BookerID: v.NextBooking.BookerID}
	}
	for i := range v.Comments {
		resp.Comments = append(resp.Comments, toCommentResponse(&v.Comments[i]))
	}
	return resp
}

func toBookingResponse(b *models.Booking) bookingResponse {
	return bookingResponse{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: string(b.Status),
		Item:   namedResource{ID: b.ItemID, Name: b.ItemName},
		Booker: namedResource{ID: b.BookerID, Name: b.BookerName},
	}
}

func toCommentResponse(c *models.Comment) commentResponse {
	return commentResponse{ID: c.ID, Text: c.Text, AuthorName: c.AuthorName, Created: c.CreatedAt}
}

func toRequestResponse(v *models.RequestView) itemRequestResponse {
	resp := itemRequestResponse{
		ID:          v.ID,
		Description: v.Description,
		Created:     v.CreatedAt,
		Items:       make([]itemResponse, 0, len(v.Items)),
	}
	for i := range v.Items {
		resp.Items = append(resp.Items, toItemResponse(&v.Items[i]))
	}
	return resp
}
