package handlers

import (
	"net/http"

	"github.com/careroute/referral-agent/internal/domain/providers"
)

// SystemHandler serves service health and capability metadata
type SystemHandler struct {
	refData providers.ReferenceDataProvider
	version string
}

// NewSystemHandler creates a new system handler
func NewSystemHandler(refData providers.ReferenceDataProvider, version string) *SystemHandler {
	return &SystemHandler{refData: refData, version: version}
}

// Health handles GET /health
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "referral-agent",
		"version": h.version,
	})
}

// Info handles GET /api/info
func (h *SystemHandler) Info(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"service":               "referral-agent",
		"version":               h.version,
		"supported_specialties": h.refData.Specialties(r.Context()),
		"insurance_plans":       h.refData.PlanIDs(r.Context()),
	})
}
