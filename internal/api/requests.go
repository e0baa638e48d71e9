package api

import (
	"encoding/json"
	"net/http"

	"shareit/internal/models"
)

func (s *Server) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	requesterID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req itemRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	request, err := s.requests.Create(r.Context(), requesterID, req.Description)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, itemRequestResponse{
		ID:          request.ID,
		Description: request.Description,
		Created:     request.CreatedAt,
		Items:       []itemResponse{},
	})
}

func (s *Server) handleListOwnRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := s.requests.ListOwn(r.Context(), requesterID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRequestViews(w, views)
}

func (s *Server) handleListOtherRequests(w http.ResponseWriter, r *http.Request) {
	requesterID, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := pageParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	views, err := s.requests.ListOthers(r.Context(), requesterID, page)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeRequestViews(w, views)
}

func (s *Server) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	actor, err := actorID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	requestID, err := pathID(r, "requestID")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.requests.Get(r.Context(), actor, requestID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toRequestResponse(view))
}

func writeRequestViews(w http.ResponseWriter, views []models.RequestView) {
	resp := make([]itemRequestResponse, 0, len(views))
	for i := range views {
		resp = append(resp, toRequestResponse(&views[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}
