package entities

// PatientSex is the patient sex extracted from a transcript
type PatientSex string

const (
	SexMale   PatientSex = "male"
	SexFemale PatientSex = "female"
)

// UnknownPatientName is the sentinel returned when no name strategy
// matched. It is distinguishable from any real extracted name.
const UnknownPatientName = "Walk-In Patient"

// ExtractedFields holds the best-effort fields pulled from a transcript.
// Every field except ClinicalNarrative may be absent; absent string fields
// are empty, absent Age is zero, absent Sex is the empty string.
// ClinicalNarrative is always populated.
type ExtractedFields struct {
	PatientName       string     `json:"patient_name"`
	DateOfBirth       string     `json:"date_of_birth,omitempty"`
	Age               int        `json:"age,omitempty"`
	Sex               PatientSex `json:"sex,omitempty"`
	ChiefComplaint    string     `json:"chief_complaint,omitempty"`
	ClinicalNarrative string     `json:"clinical_narrative"`
}

// HasName reports whether a real patient name was extracted
func (f ExtractedFields) HasName() bool {
	return f.PatientName != "" && f.PatientName != UnknownPatientName
}
