package gateway

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"shareit/internal/models"
)

const userHeader = "X-Sharer-User-Id"

type bodyValidator func(r *http.Request, body []byte) error

type queryValidator func(r *http.Request) error

// validated reads the body once, runs the validator and forwards the intact
// bytes on success.
func (g *Gateway) validated(validate bodyValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		if err := validate(r, body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		g.forward(w, r, body)
	}
}

func (g *Gateway) validatedQuery(validate queryValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := validate(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		g.forwardHandler(w, r)
	}
}

// withUser rejects requests lacking a valid identity header before they
// reach the server.
func (g *Gateway) withUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireUser(r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		next(w, r)
	}
}

func requireUser(r *http.Request) error {
	raw := r.Header.Get(userHeader)
	if raw == "" {
		return fmt.Errorf("missing %s header", userHeader)
	}
	if id, err := strconv.ParseInt(raw, 10, 64); err != nil || id <= 0 {
		return fmt.Errorf("invalid %s header", userHeader)
	}
	return nil
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func (g *Gateway) validateUserCreate(r *http.Request, body []byte) error {
	var req struct {
		Name  *string `json:"name"`
		Email *string `json:"email"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if blank(req.Name) {
		return fmt.Errorf("name must not be blank")
	}
	if blank(req.Email) || !validEmail(*req.Email) {
		return fmt.Errorf("email must be a valid address")
	}
	return nil
}

func (g *Gateway) validateUserPatch(r *http.Request, body []byte) error {
	var req struct {
		Email *string `json:"email"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if req.Email != nil && !validEmail(*req.Email) {
		return fmt.Errorf("email must be a valid address")
	}
	return nil
}

func (g *Gateway) validateItemCreate(r *http.Request, body []byte) error {
	if err := requireUser(r); err != nil {
		return err
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Available   *bool   `json:"available"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if blank(req.Name) {
		return fmt.Errorf("name must not be blank")
	}
	if blank(req.Description) {
		return fmt.Errorf("description must not be blank")
	}
	if req.Available == nil {
		return fmt.Errorf("available must be set")
	}
	return nil
}

func (g *Gateway) validateItemPatch(r *http.Request, body []byte) error {
	if err := requireUser(r); err != nil {
		return err
	}
	var req map[string]any
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	return nil
}

func (g *Gateway) validateBooking(r *http.Request, body []byte) error {
	if err := requireUser(r); err != nil {
		return err
	}
	var req struct {
		ItemID int64      `json:"itemId"`
		Start  *time.Time `json:"start"`
		End    *time.Time `json:"end"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if req.ItemID <= 0 {
		return fmt.Errorf("itemId must be positive")
	}
	if req.Start == nil || req.End == nil {
		return fmt.Errorf("start and end are required")
	}
	if !req.Start.Before(*req.End) {
		return fmt.Errorf("start must be before end")
	}
	if req.Start.Before(g.clock.Now()) {
		return fmt.Errorf("start must not be in the past")
	}
	return nil
}

func (g *Gateway) validateComment(r *http.Request, body []byte) error {
	if err := requireUser(r); err != nil {
		return err
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("text must not be blank")
	}
	return nil
}

func (g *Gateway) validateRequest(r *http.Request, body []byte) error {
	if err := requireUser(r); err != nil {
		return err
	}
	var req struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("invalid request body")
	}
	if strings.TrimSpace(req.Description) == "" {
		return fmt.Errorf("description must not be blank")
	}
	return nil
}

func validatePaging(r *http.Request) error {
	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || from < 0 {
			return fmt.Errorf("from must not be negative")
		}
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return fmt.Errorf("size must be positive")
		}
	}
	return nil
}

func validateBookingQuery(r *http.Request) error {
	if raw := r.URL.Query().Get("state"); raw != "" {
		if _, err := models.ParseBookingFilter(raw); err != nil {
			return fmt.Errorf("Unknown state: %s", strings.ToUpper(raw))
		}
	}
	return validatePaging(r)
}

func validateDecision(r *http.Request) error {
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		return fmt.Errorf("approved must be true or false")
	}
	return nil
}
