package services

import (
	"fmt"
	"strings"

	"github.com/careroute/referral-agent/internal/domain/entities"
	"github.com/careroute/referral-agent/pkg/textutil"
)

var (
	cardiovascularConditions = []string{
		"hypertension", "heart disease", "high cholesterol", "hyperlipidemia",
	}
	cardiacSymptoms = []string{
		"chest pain", "shortness of breath", "palpitations",
	}
	chronicConditions = []string{
		"diabetes", "chronic back pain", "sleep apnea", "asthma",
		"hypertension", "high cholesterol",
	}
	cancerHistoryMarkers = []string{"cancer"}
	concerningSymptoms   = []string{
		"chest pain", "shortness of breath", "severe pain", "bleeding",
		"headache", "dizziness", "lump", "weight loss",
	}
	highRiskAllergies = []string{"penicillin", "sulfa", "codeine"}
	diabetesSymptoms  = []string{
		"numbness", "tingling", "vision", "blurry", "blurred", "wound",
	}
)

type riskRule struct {
	name  string
	match func(patient entities.PatientRecord, narrative string) (string, bool)
}

// RiskAnnotator screens a patient's history against the clinical narrative
// and produces at most one predictive alert. Rules are evaluated in a fixed
// priority order; the first rule that fires supplies the alert.
type RiskAnnotator struct {
	rules []riskRule
}

// NewRiskAnnotator creates a risk annotator with the standard rule set.
func NewRiskAnnotator() *RiskAnnotator {
	return &RiskAnnotator{rules: []riskRule{
		{name: "cardiovascular-history", match: matchCardiovascularRisk},
		{name: "age-with-comorbidities", match: matchComorbidityRisk},
		{name: "cancer-history", match: matchCancerHistoryRisk},
		{name: "high-risk-allergy", match: matchAllergyRisk},
		{name: "diabetes-complication", match: matchDiabetesRisk},
	}}
}

// Annotate evaluates the rules against the patient record and narrative.
// The second return value is false when no rule fires or when no patient
// record is available.
func (r *RiskAnnotator) Annotate(patient entities.PatientRecord, hasPatient bool, narrative string) (string, bool) {
	if !hasPatient {
		return "", false
	}
	lower := strings.ToLower(narrative)
	for _, rule := range r.rules {
		if alert, ok := rule.match(patient, lower); ok {
			return alert, true
		}
	}
	return "", false
}

func historyMatches(patient entities.PatientRecord, conditions []string) []string {
	var matched []string
	for _, entry := range patient.MedicalHistory {
		if textutil.ContainsAny(entry, conditions) {
			matched = append(matched, entry)
		}
	}
	return matched
}

func matchCardiovascularRisk(patient entities.PatientRecord, narrative string) (string, bool) {
	matched := historyMatches(patient, cardiovascularConditions)
	if len(matched) == 0 || !textutil.ContainsAny(narrative, cardiacSymptoms) {
		return "", false
	}
	return fmt.Sprintf(
		"HIGH PRIORITY: Patient has cardiovascular risk factors (%s) presenting with cardiac symptoms. Recommend expedited evaluation.",
		strings.Join(matched, ", ")), true
}

func matchComorbidityRisk(patient entities.PatientRecord, narrative string) (string, bool) {
	if patient.Age <= 50 {
		return "", false
	}
	matched := historyMatches(patient, chronicConditions)
	if len(matched) < 2 {
		return "", false
	}
	return fmt.Sprintf(
		"ELEVATED RISK: Patient over 50 with multiple chronic conditions (%s). Consider comprehensive workup.",
		strings.Join(matched, ", ")), true
}

func matchCancerHistoryRisk(patient entities.PatientRecord, narrative string) (string, bool) {
	matched := historyMatches(patient, cancerHistoryMarkers)
	if len(matched) == 0 || !textutil.ContainsAny(narrative, concerningSymptoms) {
		return "", false
	}
	return fmt.Sprintf(
		"ATTENTION: Patient has cancer history (%s) with concerning new symptoms. Recommend thorough screening.",
		strings.Join(matched, ", ")), true
}

func matchAllergyRisk(patient entities.PatientRecord, narrative string) (string, bool) {
	var matched []string
	for _, allergy := range patient.Allergies {
		if textutil.ContainsAny(allergy, highRiskAllergies) {
			matched = append(matched, allergy)
		}
	}
	if len(matched) == 0 {
		return "", false
	}
	return fmt.Sprintf(
		"MEDICATION ALERT: Patient has drug allergies (%s). Verify before prescribing.",
		strings.Join(matched, ", ")), true
}

func matchDiabetesRisk(patient entities.PatientRecord, narrative string) (string, bool) {
	if len(historyMatches(patient, []string{"diabetes"})) == 0 {
		return "", false
	}
	if !textutil.ContainsAny(narrative, diabetesSymptoms) {
		return "", false
	}
	return "MONITOR: Diabetic patient presenting with possible complication symptoms. Check recent glucose control.", true
}
