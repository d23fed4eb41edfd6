package entities

import (
	"time"
)

// ReferralRecommendation is the assembled, immutable output of one
// successful analysis pass. It is never mutated after creation;
// corrections require assembling a new recommendation.
type ReferralRecommendation struct {
	ID                string           `json:"recommendation_id"`
	PatientName       string           `json:"patient_name"`
	DateOfBirth       string           `json:"date_of_birth,omitempty"`
	Age               int              `json:"age,omitempty"`
	Sex               PatientSex       `json:"sex,omitempty"`
	ChiefComplaint    string           `json:"chief_complaint,omitempty"`
	Specialty         Specialty        `json:"specialty"`
	Specialist        SpecialistRecord `json:"specialist"`
	Insurance         CoverageVerdict  `json:"insurance_verdict"`
	ProcedureCodes    []CodeEntry      `json:"procedure_codes"`
	DiagnosisCodes    []CodeEntry      `json:"diagnosis_codes"`
	ClinicalNarrative string           `json:"clinical_narrative"`
	PredictiveAlert   string           `json:"predictive_alert,omitempty"`
	DocumentReference string           `json:"rendered_document_reference,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
}

// Summary returns a short human-readable description of the recommendation
func (r ReferralRecommendation) Summary() string {
	return r.PatientName + " -> " + r.Specialist.Name + " (" + string(r.Specialty) + ", " + string(r.Insurance.Status) + ")"
}
