package services

import (
	"strings"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

// specialtySynonyms maps each routable specialty to the keywords that imply
// it. Entries are held in a slice, not a map, so classification order is
// fixed and the same transcript always resolves the same specialty.
var specialtySynonyms = []struct {
	specialty entities.Specialty
	keywords  []string
}{
	{entities.SpecialtyCardiology, []string{
		"cardiologist", "cardiac", "cardiovascular", "heart",
		"chest pain", "palpitations", "murmur", "arrhythmia",
	}},
	{entities.SpecialtyDermatology, []string{
		"dermatologist", "dermatitis", "derm", "skin", "rash",
		"lesion", "mole", "acne", "psoriasis", "eczema",
	}},
	{entities.SpecialtyOrthopedics, []string{
		"orthopedic", "ortho", "bone", "joint", "fracture",
		"knee", "hip", "shoulder", "back pain", "arthritis",
	}},
	{entities.SpecialtyNeurology, []string{
		"neurologist", "neurological", "neuro", "brain", "seizure",
		"migraine", "stroke", "nerve", "numbness", "headache",
	}},
	{entities.SpecialtyPediatrics, []string{
		"pediatric", "pediatrician", "child", "infant", "baby", "toddler",
	}},
	{entities.SpecialtyGastroenterology, []string{
		"gastroenterologist", "gastro", "stomach", "digestive",
		"bowel", "abdominal", "nausea", "reflux",
	}},
	{entities.SpecialtyPsychiatry, []string{
		"psychiatrist", "psychiatric", "mental health", "depression",
		"anxiety", "therapy", "psychological",
	}},
}

// SpecialtyClassifier resolves a transcript to a single routable specialty.
type SpecialtyClassifier struct{}

// NewSpecialtyClassifier creates a new specialty classifier.
func NewSpecialtyClassifier() *SpecialtyClassifier {
	return &SpecialtyClassifier{}
}

// Classify scans the transcript for a referral target. Direct specialty
// names are checked first in registry order, then the synonym table. The
// first match wins. The second return value is false when the transcript
// carries no recognizable referral intent.
func (c *SpecialtyClassifier) Classify(transcript string) (entities.Specialty, bool) {
	lower := strings.ToLower(transcript)

	for _, specialty := range entities.SpecialtyRegistryOrder {
		if strings.Contains(lower, string(specialty)) {
			return specialty, true
		}
	}

	for _, entry := range specialtySynonyms {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.specialty, true
			}
		}
	}

	return "", false
}
