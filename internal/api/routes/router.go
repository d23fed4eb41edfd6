package routes

import (
	"net/http"

	"github.com/careroute/referral-agent/internal/api/handlers"
	"github.com/careroute/referral-agent/internal/api/middleware"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	referralHandler *handlers.ReferralHandler
	systemHandler   *handlers.SystemHandler
}

// NewRouter creates a new router
func NewRouter(referralHandler *handlers.ReferralHandler, systemHandler *handlers.SystemHandler) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		referralHandler: referralHandler,
		systemHandler:   systemHandler,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health and metadata endpoints
	r.mux.HandleFunc("GET /health", r.systemHandler.Health)
	r.mux.HandleFunc("GET /api/info", r.systemHandler.Info)

	// Referral pipeline endpoints
	r.mux.HandleFunc("POST /api/referrals/analyze", r.referralHandler.AnalyzeTranscript)
	r.mux.HandleFunc("POST /api/referrals/{id}/confirm", r.referralHandler.ConfirmReferral)
	r.mux.HandleFunc("DELETE /api/referrals/{id}", r.referralHandler.DiscardReferral)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	return handler
}
