package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/careroute/referral-agent/internal/domain/entities"
	"github.com/careroute/referral-agent/internal/domain/providers"
	apperrors "github.com/careroute/referral-agent/pkg/errors"
)

// AnalysisStatus describes the outcome of one transcript analysis.
type AnalysisStatus string

const (
	// AnalysisIgnored means the transcript carried no recognizable
	// referral intent and nothing was stored.
	AnalysisIgnored AnalysisStatus = "ignored"

	// AnalysisPending means a recommendation was assembled and is waiting
	// for confirmation.
	AnalysisPending AnalysisStatus = "pending_confirmation"
)

// AnalysisOutcome is the result of AnalyzeTranscript.
type AnalysisOutcome struct {
	Status         AnalysisStatus                   `json:"status"`
	Recommendation *entities.ReferralRecommendation `json:"recommendation,omitempty"`
}

// DispatchStatus describes the outcome of confirming a recommendation.
type DispatchStatus string

const (
	DispatchDelivered DispatchStatus = "dispatched"
	DispatchDegraded  DispatchStatus = "dispatched_degraded"
)

// DispatchOutcome is the result of ConfirmReferral.
type DispatchOutcome struct {
	Status   DispatchStatus                  `json:"status"`
	Detail   string                          `json:"detail,omitempty"`
	Referral entities.ReferralRecommendation `json:"referral"`
}

// ReferralService orchestrates the transcript-to-referral pipeline:
// extraction, classification, reference lookups, coverage adjudication,
// risk annotation, assembly, and the confirm/discard lifecycle.
type ReferralService struct {
	extractor   *FieldExtractor
	classifier  *SpecialtyClassifier
	adjudicator *CoverageAdjudicator
	annotator   *RiskAnnotator
	refData     providers.ReferenceDataProvider
	store       *PendingStore
	renderer    providers.DocumentRenderer
	dispatcher  providers.NotificationDispatcher
	recipient   string
}

// NewReferralService wires the pipeline stages together.
func NewReferralService(
	refData providers.ReferenceDataProvider,
	store *PendingStore,
	renderer providers.DocumentRenderer,
	dispatcher providers.NotificationDispatcher,
	recipient string,
) *ReferralService {
	return &ReferralService{
		extractor:   NewFieldExtractor(),
		classifier:  NewSpecialtyClassifier(),
		adjudicator: NewCoverageAdjudicator(refData),
		annotator:   NewRiskAnnotator(),
		refData:     refData,
		store:       store,
		renderer:    renderer,
		dispatcher:  dispatcher,
		recipient:   recipient,
	}
}

// AnalyzeTranscript runs the full analysis pipeline over a transcript.
// Transcripts without referral intent yield an ignored outcome; anything
// else produces a stored recommendation awaiting confirmation. Internal
// faults are caught here and surfaced as a structured error, never a
// panic.
func (s *ReferralService) AnalyzeTranscript(ctx context.Context, transcript string) (outcome AnalysisOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Transcript analysis panicked")
			err = apperrors.NewInternalError("transcript analysis failed", fmt.Errorf("panic: %v", r))
		}
	}()

	specialty, ok := s.classifier.Classify(transcript)
	if !ok {
		log.Info().Msg("Transcript carries no referral intent, ignoring")
		return AnalysisOutcome{Status: AnalysisIgnored}, nil
	}

	fields := s.extractor.Extract(transcript)

	patient, hasPatient := entities.PatientRecord{}, false
	if fields.HasName() {
		patient, hasPatient = s.refData.PatientByName(ctx, fields.PatientName)
	}
	if hasPatient {
		// Directory demographics win over transcript guesses.
		fields.PatientName = patient.Name
		if patient.DateOfBirth != "" {
			fields.DateOfBirth = patient.DateOfBirth
		}
		if patient.Age > 0 {
			fields.Age = patient.Age
		}
		if patient.Sex != "" {
			fields.Sex = patient.Sex
		}
	}

	specialist, ok := s.selectSpecialist(ctx, specialty)
	if !ok {
		return AnalysisOutcome{}, apperrors.NewInternalError(
			fmt.Sprintf("specialist directory has no entries for %s", specialty), nil)
	}

	planID := ""
	if hasPatient {
		planID = patient.InsurancePlan
	}
	verdict := s.adjudicator.Adjudicate(ctx, specialty, planID)

	alert, _ := s.annotator.Annotate(patient, hasPatient, fields.ClinicalNarrative)

	rec := entities.ReferralRecommendation{
		ID:                uuid.New().String(),
		PatientName:       fields.PatientName,
		DateOfBirth:       fields.DateOfBirth,
		Age:               fields.Age,
		Sex:               fields.Sex,
		ChiefComplaint:    fields.ChiefComplaint,
		Specialty:         specialty,
		Specialist:        specialist,
		Insurance:         verdict,
		ProcedureCodes:    s.refData.ProcedureCodesFor(ctx, specialty),
		DiagnosisCodes:    s.refData.DiagnosisCodesFor(ctx, specialty),
		ClinicalNarrative: fields.ClinicalNarrative,
		PredictiveAlert:   alert,
		CreatedAt:         time.Now().UTC(),
	}
	s.store.Put(rec)

	log.Info().
		Str("recommendation_id", rec.ID).
		Str("patient", rec.PatientName).
		Str("specialty", string(specialty)).
		Str("coverage", string(verdict.Status)).
		Bool("alert", alert != "").
		Msg("Referral recommendation pending confirmation")

	return AnalysisOutcome{Status: AnalysisPending, Recommendation: &rec}, nil
}

// ConfirmReferral consumes the pending recommendation and performs a single
// dispatch attempt. The recommendation is consumed whether or not dispatch
// succeeds; a transport failure comes back as an external error. A document
// rendering failure degrades the dispatch to body-only instead of failing
// it.
func (s *ReferralService) ConfirmReferral(ctx context.Context, id string) (outcome DispatchOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Referral confirmation panicked")
			err = apperrors.NewInternalError("referral confirmation failed", fmt.Errorf("panic: %v", r))
		}
	}()

	rec, ok := s.store.Take(id)
	if !ok {
		return DispatchOutcome{}, apperrors.NewNotFoundError("recommendation not found, expired, or already processed")
	}

	status := DispatchDelivered
	detail := ""

	var attachment []byte
	document, filename, renderErr := s.renderer.RenderReferralForm(ctx, rec)
	if renderErr != nil {
		status = DispatchDegraded
		detail = "referral form could not be rendered; notification sent without attachment"
		log.Warn().Err(renderErr).Str("recommendation_id", id).Msg("Referral form rendering failed, dispatching without document")
	} else {
		attachment = document
		rec.DocumentReference = filename
	}

	req := providers.NotificationRequest{
		Recipient:      s.recipient,
		Subject:        renderNotificationSubject(rec),
		Body:           renderNotificationBody(rec),
		Attachment:     attachment,
		AttachmentName: rec.DocumentReference,
	}

	result, dispatchErr := s.dispatcher.Dispatch(ctx, req)
	if dispatchErr != nil || !result.Delivered {
		log.Error().Err(dispatchErr).Str("recommendation_id", id).Str("detail", result.Detail).Msg("Referral notification dispatch failed")
		return DispatchOutcome{}, apperrors.NewExternalError("notification dispatch failed", dispatchErr)
	}

	log.Info().
		Str("recommendation_id", id).
		Str("status", string(status)).
		Str("document", rec.DocumentReference).
		Msg("Referral dispatched")

	return DispatchOutcome{Status: status, Detail: detail, Referral: rec}, nil
}

// DiscardReferral drops a pending recommendation without dispatching it.
func (s *ReferralService) DiscardReferral(ctx context.Context, id string) error {
	if !s.store.Discard(id) {
		return apperrors.NewNotFoundError("recommendation not found, expired, or already processed")
	}
	log.Info().Str("recommendation_id", id).Msg("Referral recommendation discarded")
	return nil
}

// selectSpecialist picks the highest-rated specialist in the bucket.
// Rating ties keep the earlier bucket entry, so selection is deterministic.
func (s *ReferralService) selectSpecialist(ctx context.Context, specialty entities.Specialty) (entities.SpecialistRecord, bool) {
	bucket := s.refData.SpecialistsFor(ctx, specialty)
	if len(bucket) == 0 {
		return entities.SpecialistRecord{}, false
	}
	best := bucket[0]
	for _, candidate := range bucket[1:] {
		if candidate.Rating > best.Rating {
			best = candidate
		}
	}
	return best, true
}
