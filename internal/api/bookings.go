package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"shareit/internal/models"
)

func (s *Server) handleCreateBooking(w http.ResponseWriter, r *http.Request) {
	bookerID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req bookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Start == nil || req.End == nil {
		writeError(w, http.StatusBadRequest, "start and end are required")
		return
	}

	booking, err := s.bookings.Create(r.Context(), bookerID, req.ItemID, *req.Start, *req.End)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toBookingResponse(booking))
}

func (s *Server) handleDecideBooking(w http.ResponseWriter, r *http.Request) {
	ownerID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	approved, err := strconv.ParseBool(r.URL.Query().Get("approved"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid approved parameter")
		return
	}

	booking, err := s.bookings.Decide(r.Context(), ownerID, bookingID, approved)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (s *Server) handleGetBooking(w http.ResponseWriter, r *http.Request) {
	userID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bookingID, err := pathID(r, "bookingID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	booking, err := s.bookings.Get(r.Context(), userID, bookingID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toBookingResponse(booking))
}

func (s *Server) handleListBookerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForBooker)
}

func (s *Server) handleListOwnerBookings(w http.ResponseWriter, r *http.Request) {
	s.listBookings(w, r, s.bookings.ListForOwner)
}

func (s *Server) listBookings(w http.ResponseWriter, r *http.Request,
	list func(ctx context.Context, userID int64, filter models.BookingFilter, page models.Page) ([]models.Booking, error),
) {
	userID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	filter, err := models.ParseBookingFilter(r.URL.Query().Get("state"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	bookings, err := list(r.Context(), userID, filter, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		resp = append(resp, toBookingResponse(&bookings[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
