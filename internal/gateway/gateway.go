package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Gateway fronts the core API. It validates request shapes, throttles noisy
// callers and forwards everything that passes to the server unchanged.
type Gateway struct {
	cfg     config.GatewayConfig
	clock   domain.Clock
	limiter domain.RateLimiter
	client  *http.Client
	logger  *zerolog.Logger
	httpSrv *http.Server
}

func NewGateway(cfg config.GatewayConfig, clock domain.Clock, limiter domain.RateLimiter, logger *zerolog.Logger) *Gateway {
	g := &Gateway{
		cfg:     cfg,
		clock:   clock,
		limiter: limiter,
		client:  &http.Client{Timeout: cfg.Timeout()},
		logger:  logger,
	}

	g.httpSrv = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      g.routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return g
}

func (g *Gateway) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(g.rateLimit)

	r.Get("/health", g.handleHealth)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", g.validated(g.validateUserCreate))
		r.Get("/", g.forwardHandler)
		r.Get("/{userID}", g.forwardHandler)
		r.Patch("/{userID}", g.validated(g.validateUserPatch))
		r.Delete("/{userID}", g.forwardHandler)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", g.validated(g.validateItemCreate))
		r.Get("/", g.withUser(g.forwardHandler))
		r.Get("/search", g.withUser(g.validatedQuery(validatePaging)))
		r.Get("/{itemID}", g.withUser(g.forwardHandler))
		r.Patch("/{itemID}", g.validated(g.validateItemPatch))
		r.Post("/{itemID}/comment", g.validated(g.validateComment))
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", g.validated(g.validateBooking))
		r.Get("/", g.withUser(g.validatedQuery(validateBookingQuery)))
		r.Get("/owner", g.withUser(g.validatedQuery(validateBookingQuery)))
		r.Get("/{bookingID}", g.withUser(g.forwardHandler))
		r.Patch("/{bookingID}", g.withUser(g.validatedQuery(validateDecision)))
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", g.validated(g.validateRequest))
		r.Get("/", g.withUser(g.forwardHandler))
		r.Get("/all", g.withUser(g.validatedQuery(validatePaging)))
		r.Get("/{requestID}", g.withUser(g.forwardHandler))
	})

	return r
}

func (g *Gateway) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Handler exposes the routed handler for tests.
func (g *Gateway) Handler() http.Handler {
	return g.httpSrv.Handler
}

func (g *Gateway) Start() error {
	g.logger.Info().Str("addr", g.httpSrv.Addr).Str("server_url", g.cfg.ServerURL).Msg("starting gateway")
	if err := g.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("gateway server error: %w", err)
	}
	return nil
}

func (g *Gateway) Shutdown(ctx context.Context) error {
	g.logger.Info().Msg("shutting down gateway")
	return g.httpSrv.Shutdown(ctx)
}
