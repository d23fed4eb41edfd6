package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/careroute/referral-agent/internal/application/services"
	apperrors "github.com/careroute/referral-agent/pkg/errors"
)

// ReferralService is the pipeline surface the handler depends on
type ReferralService interface {
	AnalyzeTranscript(ctx context.Context, transcript string) (services.AnalysisOutcome, error)
	ConfirmReferral(ctx context.Context, id string) (services.DispatchOutcome, error)
	DiscardReferral(ctx context.Context, id string) error
}

// ReferralHandler handles referral pipeline HTTP requests
type ReferralHandler struct {
	service ReferralService
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(service ReferralService) *ReferralHandler {
	return &ReferralHandler{service: service}
}

// AnalyzeRequest is the body for POST /api/referrals/analyze
type AnalyzeRequest struct {
	Transcript string `json:"transcript"`
}

// AnalyzeTranscript handles POST /api/referrals/analyze
func (h *ReferralHandler) AnalyzeTranscript(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(strings.TrimSpace(req.Transcript)) < 3 {
		respondWithError(w, http.StatusBadRequest, "transcript is required")
		return
	}

	outcome, err := h.service.AnalyzeTranscript(r.Context(), req.Transcript)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	if outcome.Status == services.AnalysisIgnored {
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"status":  outcome.Status,
			"message": "no referral intent detected in transcript",
		})
		return
	}

	rec := outcome.Recommendation
	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"status":            outcome.Status,
		"recommendation_id": rec.ID,
		"summary":           rec.Summary(),
		"recommendation":    rec,
	})
}

// ConfirmReferral handles POST /api/referrals/{id}/confirm
func (h *ReferralHandler) ConfirmReferral(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "recommendation ID is required")
		return
	}

	outcome, err := h.service.ConfirmReferral(r.Context(), id)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeExternal) {
			respondWithJSON(w, http.StatusBadGateway, map[string]interface{}{
				"status": "dispatch_failed",
				"error":  "notification dispatch failed; the recommendation has been consumed",
			})
			return
		}
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, outcome)
}

// DiscardReferral handles DELETE /api/referrals/{id}
func (h *ReferralHandler) DiscardReferral(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "recommendation ID is required")
		return
	}

	if err := h.service.DiscardReferral(r.Context(), id); err != nil {
		respondWithAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

func respondWithAppError(w http.ResponseWriter, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		switch appErr.Type {
		case apperrors.ErrorTypeNotFound:
			respondWithError(w, http.StatusNotFound, appErr.Message)
		case apperrors.ErrorTypeValidation:
			respondWithError(w, http.StatusBadRequest, appErr.Message)
		case apperrors.ErrorTypeExternal:
			respondWithError(w, http.StatusBadGateway, appErr.Message)
		default:
			respondWithError(w, http.StatusInternalServerError, "internal server error")
		}
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal server error")
}
