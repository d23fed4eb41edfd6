package services

import (
	"context"
	"errors"
	"strings"

	"github.com/careroute/referral-agent/internal/domain/entities"
	"github.com/careroute/referral-agent/internal/domain/providers"
)

// stubReferenceData is a fixed-table reference data provider for service
// tests.
type stubReferenceData struct {
	specialists map[entities.Specialty][]entities.SpecialistRecord
	plans       map[string]entities.InsurancePlan
	patients    map[string]entities.PatientRecord
}

func newStubReferenceData() *stubReferenceData {
	return &stubReferenceData{
		specialists: map[entities.Specialty][]entities.SpecialistRecord{
			entities.SpecialtyCardiology: {
				{Name: "Dr. Emily Chen", LicenseID: "1457389201", Affiliation: "Mercy Heart Institute", Rating: 4.9, Specialty: entities.SpecialtyCardiology},
				{Name: "Dr. Marcus Thorne", LicenseID: "1892039485", Affiliation: "Sutter Cardiovascular Center", Rating: 4.2, Specialty: entities.SpecialtyCardiology},
				{Name: "Dr. Jennifer Rodriguez", LicenseID: "1567234890", Affiliation: "Pacific Heart Group", Rating: 4.7, Specialty: entities.SpecialtyCardiology},
			},
			entities.SpecialtyDermatology: {
				{Name: "Dr. Sarah Lee", LicenseID: "1239048572", Affiliation: "Bay Area Skin Health Institute", Rating: 4.8, Specialty: entities.SpecialtyDermatology},
			},
			entities.SpecialtyOrthopedics: {
				{Name: "Dr. Robert Kim", LicenseID: "1456789012", Affiliation: "Peninsula Bone & Joint", Rating: 4.8, Specialty: entities.SpecialtyOrthopedics},
			},
			entities.SpecialtyNeurology: {
				{Name: "Dr. Lisa Thompson", LicenseID: "1678901234", Affiliation: "Northern California Neurology", Rating: 4.9, Specialty: entities.SpecialtyNeurology},
			},
			entities.SpecialtyPediatrics: {
				{Name: "Dr. Hannah Okafor", LicenseID: "1901234567", Affiliation: "Golden Gate Children's Clinic", Rating: 4.8, Specialty: entities.SpecialtyPediatrics},
			},
			entities.SpecialtyGastroenterology: {
				{Name: "Dr. Priya Natarajan", LicenseID: "1123456789", Affiliation: "Bay Digestive Health Center", Rating: 4.7, Specialty: entities.SpecialtyGastroenterology},
			},
			entities.SpecialtyPsychiatry: {
				{Name: "Dr. Elena Vasquez", LicenseID: "1345670912", Affiliation: "Bay Area Behavioral Health", Rating: 4.9, Specialty: entities.SpecialtyPsychiatry},
			},
		},
		plans: map[string]entities.InsurancePlan{
			"Blue Cross": {
				PlanID: "Blue Cross",
				CoveredSpecialties: []entities.Specialty{
					entities.SpecialtyCardiology, entities.SpecialtyDermatology,
					entities.SpecialtyOrthopedics, entities.SpecialtyNeurology,
				},
				Copay:      "$25.00",
				Deductible: "$500",
			},
			"Kaiser": {
				PlanID:     "Kaiser",
				Copay:      "$15.00",
				Deductible: "$0",
			},
			"Medi-Cal": {
				PlanID: "Medi-Cal",
				CoveredSpecialties: []entities.Specialty{
					entities.SpecialtyCardiology, entities.SpecialtyOrthopedics,
					entities.SpecialtyNeurology,
				},
				Copay:             "$0.00",
				Deductible:        "$0",
				PriorAuthRequired: []entities.Specialty{entities.SpecialtyNeurology},
			},
		},
		patients: map[string]entities.PatientRecord{
			"john smith": {
				Name: "John Smith", DateOfBirth: "03/15/1975", Age: 51, Sex: entities.SexMale,
				InsurancePlan:  "Blue Cross",
				MedicalHistory: []string{"Hypertension", "High Cholesterol"},
				Allergies:      []string{"Penicillin"},
			},
			"david kim-chen": {
				Name: "David Kim-Chen", DateOfBirth: "11/03/1982", Age: 43, Sex: entities.SexMale,
				InsurancePlan:  "Kaiser",
				MedicalHistory: []string{"Asthma"},
			},
		},
	}
}

func (s *stubReferenceData) SpecialistsFor(_ context.Context, specialty entities.Specialty) []entities.SpecialistRecord {
	return s.specialists[specialty]
}

func (s *stubReferenceData) PlanByID(_ context.Context, planID string) (entities.InsurancePlan, bool) {
	plan, ok := s.plans[planID]
	return plan, ok
}

func (s *stubReferenceData) ProcedureCodesFor(_ context.Context, specialty entities.Specialty) []entities.CodeEntry {
	return []entities.CodeEntry{{Code: "99244", Description: "Office consultation", Cost: "$450"}}
}

func (s *stubReferenceData) DiagnosisCodesFor(_ context.Context, specialty entities.Specialty) []entities.CodeEntry {
	return []entities.CodeEntry{{Code: "I20.9", Description: "Angina pectoris, unspecified"}}
}

func (s *stubReferenceData) PatientByName(_ context.Context, name string) (entities.PatientRecord, bool) {
	patient, ok := s.patients[strings.ToLower(name)]
	return patient, ok
}

func (s *stubReferenceData) Specialties(_ context.Context) []entities.Specialty {
	return entities.SpecialtyRegistryOrder
}

func (s *stubReferenceData) PlanIDs(_ context.Context) []string {
	return []string{"Blue Cross", "Kaiser", "Medi-Cal"}
}

// stubRenderer returns canned bytes or a configured failure.
type stubRenderer struct {
	fail  bool
	calls int
}

func (r *stubRenderer) RenderReferralForm(_ context.Context, rec entities.ReferralRecommendation) ([]byte, string, error) {
	r.calls++
	if r.fail {
		return nil, "", errors.New("font not available")
	}
	return []byte("%PDF-fake"), "medical_referral_test.pdf", nil
}

// stubDispatcher records requests and can simulate transport failure.
type stubDispatcher struct {
	fail     bool
	requests []providers.NotificationRequest
}

func (d *stubDispatcher) Dispatch(_ context.Context, req providers.NotificationRequest) (providers.DispatchResult, error) {
	d.requests = append(d.requests, req)
	if d.fail {
		return providers.DispatchResult{Detail: "webhook returned status 502"}, errors.New("webhook error (status 502)")
	}
	return providers.DispatchResult{Delivered: true}, nil
}
