package api

import (
	"fmt"
	"net/http"
	"strconv"

	"shareit/internal/models"

	"github.com/go-chi/chi/v5"
)

const userHeader = "X-Sharer-User-Id"

// actorID reads the acting user from the identity header.
func actorID(r *http.Request) (int64, error) {
	raw := r.Header.Get(userHeader)
	if raw == "" {
		return 0, fmt.Errorf("missing %s header", userHeader)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s header", userHeader)
	}
	return id, nil
}

func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// pageParams reads from/size pagination; absent values fall back to the
// unbounded defaults.
func pageParams(r *http.Request) (models.Page, error) {
	page := models.Page{From: 0, Size: models.UnboundedSize}

	if raw := r.URL.Query().Get("from"); raw != "" {
		from, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || from < 0 {
			return page, fmt.Errorf("invalid from parameter")
		}
		page.From = from
	}
	if raw := r.URL.Query().Get("size"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return page, fmt.Errorf("invalid size parameter")
		}
		page.Size = size
	}
	return page, nil
}
