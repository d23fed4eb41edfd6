package entities

// PatientRecord represents a patient in the directory, used to enrich
// transcript extraction with demographics, coverage, and history.
type PatientRecord struct {
	Name           string     `json:"name"`
	DateOfBirth    string     `json:"dob"`
	Age            int        `json:"age"`
	Sex            PatientSex `json:"sex"`
	Address        string     `json:"address,omitempty"`
	Phone          string     `json:"phone,omitempty"`
	InsurancePlan  string     `json:"insurance_plan,omitempty"`
	MemberID       string     `json:"member_id,omitempty"`
	MedicalHistory []string   `json:"medical_history,omitempty"`
	Allergies      []string   `json:"allergies,omitempty"`
}

// HasHistory reports whether the record carries any medical history
func (p PatientRecord) HasHistory() bool {
	return len(p.MedicalHistory) > 0
}
