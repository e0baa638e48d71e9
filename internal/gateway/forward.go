package gateway

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
)

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// forwardHandler proxies the request to the server without touching it.
func (g *Gateway) forwardHandler(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	g.forward(w, r, body)
}

// forward replays the request against the server and mirrors the response
// back, status and body included.
func (g *Gateway) forward(w http.ResponseWriter, r *http.Request, body []byte) {
	url := g.cfg.ServerURL + r.URL.RequestURI()
	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, bytes.NewReader(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}
	req.Header = r.Header.Clone()
	req.ContentLength = int64(len(body))

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Error().Err(err).Str("url", url).Msg("upstream request failed")
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Error().Err(err).Msg("failed to copy upstream response")
	}
}

// rateLimit throttles per user. Requests without the identity header pass
// through untouched; the server rejects them where identity is required.
func (g *Gateway) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.cfg.RateLimit.Enabled || g.limiter == nil {
			next.ServeHTTP(w, r)
			return
		}

		raw := r.Header.Get(userHeader)
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		allowed, err := g.limiter.Allow(r.Context(), userID, g.cfg.RateLimit.Requests, g.cfg.RateLimit.Window())
		if err != nil {
			g.logger.Error().Err(err).Int64("user_id", userID).Msg("rate limit check failed")
			next.ServeHTTP(w, r)
			return
		}
		if !allowed {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}
