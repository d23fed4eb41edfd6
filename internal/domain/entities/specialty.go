package entities

// Specialty is a medical referral category used to key specialist,
// coverage, and code lookups.
type Specialty string

const (
	SpecialtyCardiology       Specialty = "cardiology"
	SpecialtyDermatology      Specialty = "dermatology"
	SpecialtyOrthopedics      Specialty = "orthopedics"
	SpecialtyNeurology        Specialty = "neurology"
	SpecialtyPediatrics       Specialty = "pediatrics"
	SpecialtyGastroenterology Specialty = "gastroenterology"
	SpecialtyPsychiatry       Specialty = "psychiatry"
)

// SpecialtyRegistryOrder is the fixed iteration order for specialty
// matching. Classification and tie-breaking depend on this order being
// stable, so it is a slice rather than a map.
var SpecialtyRegistryOrder = []Specialty{
	SpecialtyCardiology,
	SpecialtyDermatology,
	SpecialtyOrthopedics,
	SpecialtyNeurology,
	SpecialtyPediatrics,
	SpecialtyGastroenterology,
	SpecialtyPsychiatry,
}

// String returns the registry key for the specialty
func (s Specialty) String() string {
	return string(s)
}
