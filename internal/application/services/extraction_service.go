package services

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/careroute/referral-agent/internal/domain/entities"
	"github.com/careroute/referral-agent/pkg/textutil"
)

const (
	maxComplaintLength = 100
	maxNarrativeLength = 200

	narrativeFallbackLength = 150
	narrativePlaceholder    = "General consultation requested - no specific symptoms documented"
	complaintPlaceholder    = "General medical consultation"
)

// symptomKeywords flag sentences that carry clinical content. Used both to
// pick a chief complaint fallback and to locate the clinical narrative.
var symptomKeywords = []string{
	"pain", "ache", "discomfort", "pressure", "burning", "numbness",
	"tingling", "swelling", "rash", "lesion", "bleeding", "nausea",
	"vomiting", "dizziness", "fatigue", "weakness", "shortness of breath",
	"palpitations", "fever", "cough", "headache", "seizure", "blurry",
	"blurred", "itching", "cramping",
}

// nameStopWords are leading words that look like a capitalized name but are
// sentence openers or instructions, not patients.
var nameStopWords = map[string]struct{}{
	"okay": {}, "well": {}, "so": {}, "the": {}, "this": {}, "that": {},
	"please": {}, "refer": {}, "send": {}, "patient": {}, "doctor": {},
	"also": {}, "note": {}, "thanks": {}, "hello": {}, "urgent": {},
	"saw": {}, "seen": {}, "met": {},
}

var (
	// Name patterns run in order; the first hit wins. The name group stays
	// case sensitive so lowercase filler words never match.
	namePhraseRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i:(?:refer|send|sending|referring)\s+)([A-Z][a-z]+(?:[-\s][A-Z][a-z]+)+)(?i:\s+(?:to|for|over)\b)`),
		regexp.MustCompile(`(?i:patient(?:'s name)?\s+is\s+)([A-Z][a-z]+(?:[-\s][A-Z][a-z]+)+)`),
		regexp.MustCompile(`(?i:patient\s+)([A-Z][a-z]+(?:[-\s][A-Z][a-z]+)+)`),
		regexp.MustCompile(`([A-Z][a-z]+(?:[-\s][A-Z][a-z]+)+)(?i:\s+(?:is\s+a|has\s+been|reports|presents|complain))`),
	}
	capitalizedNameRe = regexp.MustCompile(`\b([A-Z][a-z]+(?:[-\s][A-Z][a-z]+)+)\b`)

	dobRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:date\s+of\s+birth|dob|born(?:\s+on)?)(?:\s+is)?[:\s]+(\d{1,2}[/-]\d{1,2}[/-]\d{4})`),
		regexp.MustCompile(`(?i)(?:date\s+of\s+birth|dob|born(?:\s+on)?)(?:\s+is)?[:\s]+([A-Za-z]+\s+\d{1,2},?\s+\d{4})`),
		regexp.MustCompile(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`),
	}

	ageRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(\d{1,3})[\s-]*years?[\s-]*old\b`),
		regexp.MustCompile(`(?i)\bage\s+(?:is\s+)?(\d{1,3})\b`),
		regexp.MustCompile(`(?i)\b(\d{1,3})\s*y[./]?o\b`),
	}

	maleRe   = regexp.MustCompile(`(?i)\b(male|man|gentleman|he|his|him)\b`)
	femaleRe = regexp.MustCompile(`(?i)\b(female|woman|lady|she|her|hers)\b`)

	complaintRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)complain(?:s|ing)?\s+of\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)present(?:s|ing)?\s+with\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)(?:has|have)\s+been\s+experiencing\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)reports?\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)symptoms?\s+of\s+([^.!?]+)`),
		regexp.MustCompile(`(?i)suffers?\s+from\s+([^.!?]+)`),
	}

	presentationRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:presents?|presenting|presented)\s+with[^.!?]+`),
		regexp.MustCompile(`(?i)(?:complains?|complaining)\s+of[^.!?]+`),
		regexp.MustCompile(`(?i)(?:has|have)\s+been\s+experiencing[^.!?]+`),
	}

	referVerbRe = regexp.MustCompile(`(?i)\brefer`)
)

// FieldExtractor pulls structured patient fields out of free-text
// transcripts. Every field extraction is total: when no strategy matches,
// the field gets its documented default instead of an error.
type FieldExtractor struct{}

// NewFieldExtractor creates a new transcript field extractor.
func NewFieldExtractor() *FieldExtractor {
	return &FieldExtractor{}
}

// Extract runs every field extractor over the transcript. It never fails:
// unparseable input yields a fields struct populated with defaults.
func (e *FieldExtractor) Extract(transcript string) entities.ExtractedFields {
	return entities.ExtractedFields{
		PatientName:       e.extractName(transcript),
		DateOfBirth:       e.extractDOB(transcript),
		Age:               e.extractAge(transcript),
		Sex:               e.extractSex(transcript),
		ChiefComplaint:    e.extractComplaint(transcript),
		ClinicalNarrative: e.extractNarrative(transcript),
	}
}

func (e *FieldExtractor) extractName(transcript string) string {
	for _, re := range namePhraseRes {
		if m := re.FindStringSubmatch(transcript); m != nil {
			if name := cleanName(m[1]); name != "" {
				return name
			}
		}
	}

	// Fallback heuristic: first multi-word capitalized run whose leading
	// word is not a known sentence opener.
	for _, m := range capitalizedNameRe.FindAllStringSubmatch(transcript, -1) {
		if name := cleanName(m[1]); name != "" {
			return name
		}
	}

	return entities.UnknownPatientName
}

func cleanName(candidate string) string {
	words := strings.Fields(candidate)

	// Strip leading sentence openers ("Saw John Smith", "Okay So ...").
	for len(words) > 0 {
		if _, stop := nameStopWords[strings.ToLower(words[0])]; !stop {
			break
		}
		words = words[1:]
	}
	// A name needs at least two words; more than four is almost always a
	// mis-grabbed phrase.
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	return strings.Join(words, " ")
}

func (e *FieldExtractor) extractDOB(transcript string) string {
	for _, re := range dobRes {
		if m := re.FindStringSubmatch(transcript); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func (e *FieldExtractor) extractAge(transcript string) int {
	for _, re := range ageRes {
		if m := re.FindStringSubmatch(transcript); m != nil {
			age, err := strconv.Atoi(m[1])
			if err != nil || age <= 0 || age > 130 {
				continue
			}
			return age
		}
	}
	return 0
}

func (e *FieldExtractor) extractSex(transcript string) entities.PatientSex {
	if maleRe.MatchString(transcript) {
		return entities.SexMale
	}
	if femaleRe.MatchString(transcript) {
		return entities.SexFemale
	}
	return ""
}

func (e *FieldExtractor) extractComplaint(transcript string) string {
	for _, re := range complaintRes {
		if m := re.FindStringSubmatch(transcript); m != nil {
			complaint := strings.TrimSpace(m[1])
			if len(complaint) > 10 {
				return textutil.Truncate(complaint, maxComplaintLength)
			}
		}
	}

	// No explicit complaint phrasing: fall back to the first sentence that
	// mentions a symptom.
	for _, sentence := range textutil.SplitSentences(transcript) {
		if textutil.ContainsAny(sentence, symptomKeywords) {
			return textutil.Truncate(sentence, maxComplaintLength)
		}
	}

	return complaintPlaceholder
}

func (e *FieldExtractor) extractNarrative(transcript string) string {
	sentences := textutil.SplitSentences(transcript)

	// Prefer the first symptom-bearing sentence.
	for _, sentence := range sentences {
		if len(sentence) > 15 && textutil.ContainsAny(sentence, symptomKeywords) {
			return textutil.Truncate(sentence, maxNarrativeLength)
		}
	}

	// Otherwise take the sentence immediately preceding the referral
	// instruction, which usually carries the clinical context.
	if loc := referVerbRe.FindStringIndex(transcript); loc != nil && loc[0] > 20 {
		lead := textutil.SplitSentences(transcript[:loc[0]])
		if len(lead) > 0 {
			last := lead[len(lead)-1]
			if len(last) > 15 {
				return textutil.Truncate(last, maxNarrativeLength)
			}
		}
	}

	// Or any presentation phrase, including the verb itself.
	for _, re := range presentationRes {
		if m := re.FindString(transcript); len(m) > 15 {
			return textutil.Truncate(strings.TrimSpace(m), maxNarrativeLength)
		}
	}

	trimmed := strings.TrimSpace(transcript)
	if trimmed == "" {
		return narrativePlaceholder
	}
	return textutil.Truncate(trimmed, narrativeFallbackLength)
}
