package entities

// SpecialistRecord represents a specialist in the referral directory.
// Each record belongs to exactly one specialty bucket.
type SpecialistRecord struct {
	Name        string    `json:"name"`
	LicenseID   string    `json:"license_id"`
	Affiliation string    `json:"affiliation"`
	Rating      float64   `json:"rating"`
	Address     string    `json:"address"`
	Contact     string    `json:"contact,omitempty"`
	Specialty   Specialty `json:"specialty"`
}
