package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careroute/referral-agent/internal/domain/entities"
	apperrors "github.com/careroute/referral-agent/pkg/errors"
)

func newTestService(renderer *stubRenderer, dispatcher *stubDispatcher) (*ReferralService, *PendingStore) {
	store := NewPendingStore(time.Minute)
	svc := NewReferralService(newStubReferenceData(), store, renderer, dispatcher, "referrals@careroute.example")
	return svc, store
}

func TestReferralService_AnalyzeKnownPatient(t *testing.T) {
	svc, store := newTestService(&stubRenderer{}, &stubDispatcher{})

	transcript := "Please refer John Smith to cardiology. He has been experiencing chest pain with exertion and palpitations."
	outcome, err := svc.AnalyzeTranscript(context.Background(), transcript)
	require.NoError(t, err)
	assert.Equal(t, AnalysisPending, outcome.Status)

	rec := outcome.Recommendation
	require.NotNil(t, rec)
	assert.NotEmpty(t, rec.ID)
	assert.Equal(t, "John Smith", rec.PatientName)
	assert.Equal(t, entities.SpecialtyCardiology, rec.Specialty)

	// Highest rated cardiologist wins.
	assert.Equal(t, "Dr. Emily Chen", rec.Specialist.Name)

	// Directory demographics enrich the extraction.
	assert.Equal(t, "03/15/1975", rec.DateOfBirth)
	assert.Equal(t, 51, rec.Age)

	// Blue Cross covers cardiology.
	assert.Equal(t, entities.CoverageInNetwork, rec.Insurance.Status)
	assert.Equal(t, "$25.00", rec.Insurance.Copay)

	// Cardiovascular history plus cardiac symptoms raises the alert.
	assert.Contains(t, rec.PredictiveAlert, "HIGH PRIORITY")

	assert.NotEmpty(t, rec.ProcedureCodes)
	assert.NotEmpty(t, rec.DiagnosisCodes)
	assert.Equal(t, 1, store.Len())
}

func TestReferralService_AnalyzeNoIntent(t *testing.T) {
	svc, store := newTestService(&stubRenderer{}, &stubDispatcher{})

	outcome, err := svc.AnalyzeTranscript(context.Background(), "Patient came in for a routine annual checkup. All vitals within normal range.")
	require.NoError(t, err)
	assert.Equal(t, AnalysisIgnored, outcome.Status)
	assert.Nil(t, outcome.Recommendation)
	assert.Equal(t, 0, store.Len())
}

func TestReferralService_AnalyzeUnknownPatientIsSelfPay(t *testing.T) {
	svc, _ := newTestService(&stubRenderer{}, &stubDispatcher{})

	transcript := "Please refer Nora Quintero to dermatology. She has a suspicious skin lesion on the left forearm."
	outcome, err := svc.AnalyzeTranscript(context.Background(), transcript)
	require.NoError(t, err)
	require.Equal(t, AnalysisPending, outcome.Status)

	rec := outcome.Recommendation
	assert.Equal(t, "Nora Quintero", rec.PatientName)
	assert.Equal(t, entities.CoverageSelfPay, rec.Insurance.Status)
	assert.Equal(t, entities.UninsuredPlanName, rec.Insurance.PlanID)
	assert.Equal(t, entities.FullPatientResponsibility, rec.Insurance.Copay)
	assert.Empty(t, rec.PredictiveAlert)
}

func TestReferralService_AnalyzeOutOfNetwork(t *testing.T) {
	svc, _ := newTestService(&stubRenderer{}, &stubDispatcher{})

	// Kaiser covers no referral specialty.
	transcript := "Please refer David Kim-Chen to orthopedics for chronic knee pain."
	outcome, err := svc.AnalyzeTranscript(context.Background(), transcript)
	require.NoError(t, err)
	require.Equal(t, AnalysisPending, outcome.Status)

	rec := outcome.Recommendation
	assert.Equal(t, entities.CoverageOutOfNetwork, rec.Insurance.Status)
	assert.Equal(t, entities.FullPatientResponsibility, rec.Insurance.Copay)
	assert.Equal(t, "Kaiser", rec.Insurance.PlanID)
}

func TestReferralService_AnalyzeAnonymousTranscript(t *testing.T) {
	svc, _ := newTestService(&stubRenderer{}, &stubDispatcher{})

	outcome, err := svc.AnalyzeTranscript(context.Background(), "patient needs a cardiology consult, reports palpitations at night")
	require.NoError(t, err)
	require.Equal(t, AnalysisPending, outcome.Status)

	rec := outcome.Recommendation
	assert.Equal(t, entities.UnknownPatientName, rec.PatientName)
	assert.Equal(t, entities.CoverageSelfPay, rec.Insurance.Status)
}

func TestReferralService_ConfirmDispatchesWithDocument(t *testing.T) {
	renderer := &stubRenderer{}
	dispatcher := &stubDispatcher{}
	svc, store := newTestService(renderer, dispatcher)

	outcome, err := svc.AnalyzeTranscript(context.Background(), "Refer John Smith to cardiology, chest pain on exertion.")
	require.NoError(t, err)
	id := outcome.Recommendation.ID

	dispatch, err := svc.ConfirmReferral(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, DispatchDelivered, dispatch.Status)
	assert.Equal(t, "medical_referral_test.pdf", dispatch.Referral.DocumentReference)

	require.Len(t, dispatcher.requests, 1)
	req := dispatcher.requests[0]
	assert.Equal(t, "referrals@careroute.example", req.Recipient)
	assert.Contains(t, req.Subject, "John Smith")
	assert.Contains(t, req.Body, "Dr. Emily Chen")
	assert.NotEmpty(t, req.Attachment)
	assert.Equal(t, "medical_referral_test.pdf", req.AttachmentName)

	// Consumed by the confirmation.
	assert.Equal(t, 0, store.Len())
	_, err = svc.ConfirmReferral(context.Background(), id)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestReferralService_ConfirmDegradedWhenRenderFails(t *testing.T) {
	renderer := &stubRenderer{fail: true}
	dispatcher := &stubDispatcher{}
	svc, _ := newTestService(renderer, dispatcher)

	outcome, err := svc.AnalyzeTranscript(context.Background(), "Refer John Smith to cardiology, chest pain on exertion.")
	require.NoError(t, err)

	dispatch, err := svc.ConfirmReferral(context.Background(), outcome.Recommendation.ID)
	require.NoError(t, err)
	assert.Equal(t, DispatchDegraded, dispatch.Status)
	assert.Empty(t, dispatch.Referral.DocumentReference)

	require.Len(t, dispatcher.requests, 1)
	assert.Empty(t, dispatcher.requests[0].Attachment)
}

func TestReferralService_ConfirmDispatchFailureConsumesEntry(t *testing.T) {
	dispatcher := &stubDispatcher{fail: true}
	svc, store := newTestService(&stubRenderer{}, dispatcher)

	outcome, err := svc.AnalyzeTranscript(context.Background(), "Refer John Smith to cardiology, chest pain on exertion.")
	require.NoError(t, err)
	id := outcome.Recommendation.ID

	_, err = svc.ConfirmReferral(context.Background(), id)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	// The single attempt consumed the recommendation either way.
	assert.Equal(t, 0, store.Len())
	_, err = svc.ConfirmReferral(context.Background(), id)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestReferralService_Discard(t *testing.T) {
	dispatcher := &stubDispatcher{}
	svc, store := newTestService(&stubRenderer{}, dispatcher)

	outcome, err := svc.AnalyzeTranscript(context.Background(), "Refer John Smith to cardiology, chest pain on exertion.")
	require.NoError(t, err)
	id := outcome.Recommendation.ID

	require.NoError(t, svc.DiscardReferral(context.Background(), id))
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, dispatcher.requests)

	err = svc.DiscardReferral(context.Background(), id)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}
