package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Server is the core HTTP API. It trusts its callers to have validated
// request shapes; the gateway sits in front of it and does that work.
type Server struct {
	users    *service.UserService
	items    *service.ItemService
	bookings *service.BookingService
	requests *service.RequestService
	logger   *zerolog.Logger
	httpSrv  *http.Server
}

func NewServer(
	port int,
	users *service.UserService,
	items *service.ItemService,
	bookings *service.BookingService,
	requests *service.RequestService,
	logger *zerolog.Logger,
) *Server {
	s := &Server{
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		logger:   logger,
	}

	s.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      s.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(s.logger))

	r.Get("/health", s.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.handleCreateUser)
		r.Get("/", s.handleListUsers)
		r.Get("/{userID}", s.handleGetUser)
		r.Patch("/{userID}", s.handleUpdateUser)
		r.Delete("/{userID}", s.handleDeleteUser)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", s.handleAddItem)
		r.Get("/", s.handleListItems)
		r.Get("/search", s.handleSearchItems)
		r.Get("/{itemID}", s.handleGetItem)
		r.Patch("/{itemID}", s.handleUpdateItem)
		r.Post("/{itemID}/comment", s.handleAddComment)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", s.handleCreateBooking)
		r.Get("/", s.handleListBookerBookings)
		r.Get("/owner", s.handleListOwnerBookings)
		r.Get("/{bookingID}", s.handleGetBooking)
		r.Patch("/{bookingID}", s.handleDecideBooking)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", s.handleCreateRequest)
		r.Get("/", s.handleListOwnRequests)
		r.Get("/all", s.handleListOtherRequests)
		r.Get("/{requestID}", s.handleGetRequest)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpSrv.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpSrv.Addr).Msg("starting http server")
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info().Msg("shutting down http server")
	return s.httpSrv.Shutdown(ctx)
}
