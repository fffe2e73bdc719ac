// Package api implements the portfolio REST API using chi.
package api

import (
	"net/http"
	"strings"
)

// GateConfig drives the access gate for engagement endpoints and the
// admin bearer check.
type GateConfig struct {
	// SiteOrigin is the only Origin/Referer allowed through the gate.
	SiteOrigin string
	// GateToken is the shared bearer token the frontend sends on gated
	// calls.
	GateToken string
	// AdminToken protects the admin surface.
	AdminToken string
	// Development additionally allows localhost origins.
	Development bool
	// Disabled turns both checks off (tests, local tooling).
	Disabled bool
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(auth, "Bearer ")
}

func requestOrigin(r *http.Request) string {
	if origin := r.Header.Get("Origin"); origin != "" {
		return origin
	}
	return strings.TrimSuffix(r.Header.Get("Referer"), "/")
}

func (c GateConfig) originAllowed(origin string) bool {
	if origin == c.SiteOrigin {
		return true
	}
	if c.Development && (origin == "http://localhost:3000" || origin == "http://127.0.0.1:3000") {
		return true
	}
	return false
}

// AccessGate rejects requests whose origin does not match the configured
// site origin (403) or whose bearer token does not match the shared gate
// token (401). It guards the engagement endpoints against drive-by
// increments, not against a determined caller.
func AccessGate(cfg GateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Disabled {
				next.ServeHTTP(w, r)
				return
			}
			if !cfg.originAllowed(requestOrigin(r)) {
				writeJSON(w, http.StatusForbidden, errorBody("forbidden"))
				return
			}
			if bearerToken(r) != cfg.GateToken {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// AdminAuth validates the admin bearer token. Origin is not checked here:
// the admin dashboard may be driven from CLI tooling.
func AdminAuth(cfg GateConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Disabled {
				next.ServeHTTP(w, r)
				return
			}
			if cfg.AdminToken == "" || bearerToken(r) != cfg.AdminToken {
				writeJSON(w, http.StatusUnauthorized, errorBody("unauthorized"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
