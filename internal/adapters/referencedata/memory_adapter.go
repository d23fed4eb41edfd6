package referencedata

import (
	"context"
	"strings"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

// MemoryAdapter is an in-process reference data store seeded with the
// specialist registry, insurance plans, billing code tables, and patient
// directory. All tables are read-only after construction, so lookups need
// no locking. Methods return copies; callers can never mutate the seed
// data.
type MemoryAdapter struct {
	specialists    map[entities.Specialty][]entities.SpecialistRecord
	specialtyOrder []entities.Specialty
	plans          map[string]entities.InsurancePlan
	planOrder      []string
	procedureCodes map[string][]entities.CodeEntry
	diagnosisCodes map[string][]entities.CodeEntry
	patients       []entities.PatientRecord
}

// NewMemoryAdapter creates a reference data adapter with the standard seed
// tables.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{
		specialists:    seedSpecialists(),
		specialtyOrder: entities.SpecialtyRegistryOrder,
		plans:          seedPlans(),
		planOrder:      []string{"Blue Cross", "Kaiser", "Medi-Cal"},
		procedureCodes: seedProcedureCodes(),
		diagnosisCodes: seedDiagnosisCodes(),
		patients:       seedPatients(),
	}
}

// SpecialistsFor returns the specialist bucket for a specialty in seed
// order. Unknown specialties yield an empty slice.
func (a *MemoryAdapter) SpecialistsFor(_ context.Context, specialty entities.Specialty) []entities.SpecialistRecord {
	bucket := a.specialists[specialty]
	out := make([]entities.SpecialistRecord, len(bucket))
	copy(out, bucket)
	return out
}

// PlanByID looks up an insurance plan by its identifier.
func (a *MemoryAdapter) PlanByID(_ context.Context, planID string) (entities.InsurancePlan, bool) {
	plan, ok := a.plans[planID]
	return plan, ok
}

// ProcedureCodesFor returns CPT entries for a specialty, falling back to
// the default bucket.
func (a *MemoryAdapter) ProcedureCodesFor(_ context.Context, specialty entities.Specialty) []entities.CodeEntry {
	return lookupCodes(a.procedureCodes, specialty)
}

// DiagnosisCodesFor returns ICD-10 entries for a specialty, falling back
// to the default bucket.
func (a *MemoryAdapter) DiagnosisCodesFor(_ context.Context, specialty entities.Specialty) []entities.CodeEntry {
	return lookupCodes(a.diagnosisCodes, specialty)
}

// PatientByName finds a patient by exact name, case-insensitively.
func (a *MemoryAdapter) PatientByName(_ context.Context, name string) (entities.PatientRecord, bool) {
	for _, patient := range a.patients {
		if strings.EqualFold(patient.Name, name) {
			return patient, true
		}
	}
	return entities.PatientRecord{}, false
}

// Specialties returns the registry keys in fixed order.
func (a *MemoryAdapter) Specialties(_ context.Context) []entities.Specialty {
	out := make([]entities.Specialty, len(a.specialtyOrder))
	copy(out, a.specialtyOrder)
	return out
}

// PlanIDs returns the known insurance plan identifiers.
func (a *MemoryAdapter) PlanIDs(_ context.Context) []string {
	out := make([]string, len(a.planOrder))
	copy(out, a.planOrder)
	return out
}

func lookupCodes(table map[string][]entities.CodeEntry, specialty entities.Specialty) []entities.CodeEntry {
	bucket, ok := table[string(specialty)]
	if !ok {
		bucket = table[entities.DefaultCodeBucket]
	}
	out := make([]entities.CodeEntry, len(bucket))
	copy(out, bucket)
	return out
}

func seedSpecialists() map[entities.Specialty][]entities.SpecialistRecord {
	return map[entities.Specialty][]entities.SpecialistRecord{
		entities.SpecialtyCardiology: {
			{Name: "Dr. Emily Chen", LicenseID: "1457389201", Affiliation: "Mercy Heart Institute", Rating: 4.9, Address: "1234 Medical Plaza Dr, San Francisco, CA 94115", Contact: "(415) 555-0134", Specialty: entities.SpecialtyCardiology},
			{Name: "Dr. Marcus Thorne", LicenseID: "1892039485", Affiliation: "Sutter Cardiovascular Center", Rating: 4.2, Address: "5678 Health Blvd, Oakland, CA 94612", Contact: "(510) 555-0188", Specialty: entities.SpecialtyCardiology},
			{Name: "Dr. Jennifer Rodriguez", LicenseID: "1567234890", Affiliation: "Pacific Heart Group", Rating: 4.7, Address: "9012 Cardio Way, San Jose, CA 95123", Contact: "(408) 555-0112", Specialty: entities.SpecialtyCardiology},
		},
		entities.SpecialtyDermatology: {
			{Name: "Dr. Sarah Lee", LicenseID: "1239048572", Affiliation: "Bay Area Skin Health Institute", Rating: 4.8, Address: "3456 Derma Ave, Palo Alto, CA 94301", Contact: "(650) 555-0147", Specialty: entities.SpecialtyDermatology},
			{Name: "Dr. Kevin Patel", LicenseID: "1928374650", Affiliation: "Valley Dermatology Associates", Rating: 4.5, Address: "7890 Skin Care Lane, Fremont, CA 94536", Contact: "(510) 555-0129", Specialty: entities.SpecialtyDermatology},
			{Name: "Dr. Michelle Williams", LicenseID: "1345678901", Affiliation: "Advanced Dermatology Center", Rating: 4.6, Address: "2468 Beauty Blvd, Berkeley, CA 94704", Contact: "(510) 555-0163", Specialty: entities.SpecialtyDermatology},
		},
		entities.SpecialtyOrthopedics: {
			{Name: "Dr. Brock Stone", LicenseID: "1122334455", Affiliation: "Bay Joint & Spine Center", Rating: 4.7, Address: "1357 Bone Ave, San Mateo, CA 94403", Contact: "(650) 555-0171", Specialty: entities.SpecialtyOrthopedics},
			{Name: "Dr. Amanda Foster", LicenseID: "1987654321", Affiliation: "Silicon Valley Orthopedics", Rating: 4.4, Address: "2468 Sports Medicine Dr, Santa Clara, CA 95051", Contact: "(408) 555-0195", Specialty: entities.SpecialtyOrthopedics},
			{Name: "Dr. Robert Kim", LicenseID: "1456789012", Affiliation: "Peninsula Bone & Joint", Rating: 4.8, Address: "3691 Movement Way, Redwood City, CA 94063", Contact: "(650) 555-0108", Specialty: entities.SpecialtyOrthopedics},
		},
		entities.SpecialtyNeurology: {
			{Name: "Dr. Lisa Thompson", LicenseID: "1678901234", Affiliation: "Northern California Neurology", Rating: 4.9, Address: "4567 Brain Ave, San Francisco, CA 94117", Contact: "(415) 555-0152", Specialty: entities.SpecialtyNeurology},
			{Name: "Dr. Michael Chang", LicenseID: "1789012345", Affiliation: "Bay Area Neurological Institute", Rating: 4.3, Address: "8901 Neural Network Dr, Mountain View, CA 94041", Contact: "(650) 555-0186", Specialty: entities.SpecialtyNeurology},
			{Name: "Dr. Patricia Davis", LicenseID: "1890123456", Affiliation: "Advanced Neuroscience Center", Rating: 4.6, Address: "1234 Cognitive Ct, Sunnyvale, CA 94087", Contact: "(408) 555-0124", Specialty: entities.SpecialtyNeurology},
		},
		entities.SpecialtyPediatrics: {
			{Name: "Dr. Hannah Okafor", LicenseID: "1901234567", Affiliation: "Golden Gate Children's Clinic", Rating: 4.8, Address: "789 Little Steps Way, San Francisco, CA 94122", Contact: "(415) 555-0190", Specialty: entities.SpecialtyPediatrics},
			{Name: "Dr. Daniel Reyes", LicenseID: "1012345678", Affiliation: "South Bay Pediatric Group", Rating: 4.5, Address: "456 Growing Ave, San Jose, CA 95112", Contact: "(408) 555-0177", Specialty: entities.SpecialtyPediatrics},
		},
		entities.SpecialtyGastroenterology: {
			{Name: "Dr. Priya Natarajan", LicenseID: "1123456789", Affiliation: "Bay Digestive Health Center", Rating: 4.7, Address: "321 Wellness Blvd, Oakland, CA 94607", Contact: "(510) 555-0141", Specialty: entities.SpecialtyGastroenterology},
			{Name: "Dr. Thomas Grant", LicenseID: "1234567890", Affiliation: "Peninsula GI Associates", Rating: 4.4, Address: "654 Care Ct, San Mateo, CA 94402", Contact: "(650) 555-0159", Specialty: entities.SpecialtyGastroenterology},
		},
		entities.SpecialtyPsychiatry: {
			{Name: "Dr. Elena Vasquez", LicenseID: "1345670912", Affiliation: "Bay Area Behavioral Health", Rating: 4.9, Address: "987 Mindful St, Berkeley, CA 94710", Contact: "(510) 555-0115", Specialty: entities.SpecialtyPsychiatry},
			{Name: "Dr. James Liu", LicenseID: "1456701923", Affiliation: "Pacific Psychiatry Partners", Rating: 4.6, Address: "147 Serenity Dr, San Francisco, CA 94110", Contact: "(415) 555-0168", Specialty: entities.SpecialtyPsychiatry},
		},
	}
}

func seedPlans() map[string]entities.InsurancePlan {
	return map[string]entities.InsurancePlan{
		"Blue Cross": {
			PlanID: "Blue Cross",
			CoveredSpecialties: []entities.Specialty{
				entities.SpecialtyCardiology, entities.SpecialtyDermatology,
				entities.SpecialtyOrthopedics, entities.SpecialtyNeurology,
			},
			Copay:      "$25.00",
			Deductible: "$500",
		},
		// Kaiser only covers general practice visits; every specialty
		// referral adjudicates out-of-network.
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
	}
}

func seedProcedureCodes() map[string][]entities.CodeEntry {
	return map[string][]entities.CodeEntry{
		"cardiology": {
			{Code: "99244", Description: "Office consultation for cardiac evaluation", Cost: "$450"},
			{Code: "93000", Description: "Electrocardiogram (ECG/EKG)", Cost: "$150"},
			{Code: "93307", Description: "Echocardiography transthoracic", Cost: "$800"},
			{Code: "93458", Description: "Cardiac catheterization", Cost: "$2500"},
		},
		"dermatology": {
			{Code: "99213", Description: "Office visit dermatological examination", Cost: "$200"},
			{Code: "11100", Description: "Biopsy of skin lesion", Cost: "$300"},
			{Code: "17000", Description: "Destruction of skin lesion", Cost: "$250"},
			{Code: "11403", Description: "Excision of skin lesion", Cost: "$400"},
		},
		"orthopedics": {
			{Code: "99243", Description: "Office consultation orthopedic evaluation", Cost: "$350"},
			{Code: "73060", Description: "X-ray of knee", Cost: "$120"},
			{Code: "73721", Description: "MRI of joint", Cost: "$1200"},
			{Code: "29881", Description: "Arthroscopy knee with meniscectomy", Cost: "$3500"},
		},
		"neurology": {
			{Code: "99245", Description: "Office consultation neurological evaluation", Cost: "$500"},
			{Code: "95860", Description: "Electromyography (EMG)", Cost: "$400"},
			{Code: "70553", Description: "MRI brain with contrast", Cost: "$2000"},
			{Code: "95116", Description: "EEG monitoring", Cost: "$600"},
		},
		entities.DefaultCodeBucket: {
			{Code: "99499", Description: "Unlisted evaluation and management service", Cost: "$300"},
			{Code: "99213", Description: "Office or other outpatient visit", Cost: "$200"},
			{Code: "99214", Description: "Office or other outpatient visit (detailed)", Cost: "$250"},
		},
	}
}

func seedDiagnosisCodes() map[string][]entities.CodeEntry {
	return map[string][]entities.CodeEntry{
		"cardiology": {
			{Code: "I25.10", Description: "Atherosclerotic heart disease"},
			{Code: "I50.9", Description: "Heart failure, unspecified"},
			{Code: "I20.9", Description: "Angina pectoris, unspecified"},
			{Code: "I48.91", Description: "Atrial fibrillation"},
		},
		"dermatology": {
			{Code: "L30.9", Description: "Dermatitis, unspecified"},
			{Code: "C44.92", Description: "Skin malignancy"},
			{Code: "L70.0", Description: "Acne vulgaris"},
			{Code: "L40.9", Description: "Psoriasis, unspecified"},
		},
		"orthopedics": {
			{Code: "M25.561", Description: "Pain in right knee"},
			{Code: "M54.5", Description: "Low back pain"},
			{Code: "M75.30", Description: "Rotator cuff tear"},
			{Code: "S72.001A", Description: "Fracture of femur"},
		},
		"neurology": {
			{Code: "G43.909", Description: "Migraine, unspecified"},
			{Code: "G40.909", Description: "Epilepsy, unspecified"},
			{Code: "G35", Description: "Multiple sclerosis"},
			{Code: "F03.90", Description: "Dementia, unspecified"},
		},
		entities.DefaultCodeBucket: {
			{Code: "R69", Description: "Illness, unspecified"},
			{Code: "Z00.00", Description: "Encounter for general adult medical examination"},
			{Code: "R06.02", Description: "Shortness of breath"},
		},
	}
}

func seedPatients() []entities.PatientRecord {
	return []entities.PatientRecord{
		{
			Name: "John Smith", DateOfBirth: "03/15/1975", Age: 51, Sex: entities.SexMale,
			Address: "442 Harrison St, San Francisco, CA 94105", Phone: "(415) 555-0201",
			InsurancePlan: "Blue Cross", MemberID: "BC-8842103",
			MedicalHistory: []string{"Hypertension", "High Cholesterol"},
			Allergies:      []string{"Penicillin"},
		},
		{
			Name: "Maria Gonzalez-Lopez", DateOfBirth: "07/22/1968", Age: 58, Sex: entities.SexFemale,
			Address: "89 Mission Blvd, Fremont, CA 94539", Phone: "(510) 555-0214",
			InsurancePlan: "Medi-Cal", MemberID: "MC-5521870",
			MedicalHistory: []string{"Diabetes Type 2", "Hypertension", "Chronic Back Pain"},
			Allergies:      []string{"Sulfa drugs"},
		},
		{
			Name: "David Kim-Chen", DateOfBirth: "11/03/1982", Age: 43, Sex: entities.SexMale,
			Address: "1510 Webster St, Oakland, CA 94612", Phone: "(510) 555-0226",
			InsurancePlan: "Kaiser", MemberID: "KP-3308457",
			MedicalHistory: []string{"Asthma"},
		},
		{
			Name: "Jennifer Washington", DateOfBirth: "02/14/1959", Age: 67, Sex: entities.SexFemale,
			Address: "720 Oak Grove Ave, Menlo Park, CA 94025", Phone: "(650) 555-0238",
			InsurancePlan: "Blue Cross", MemberID: "BC-119476",
			MedicalHistory: []string{"Breast Cancer Survivor", "Sleep Apnea"},
			Allergies:      []string{"Codeine"},
		},
		{
			Name: "Ahmed Hassan", DateOfBirth: "09/30/1990", Age: 35, Sex: entities.SexMale,
			Address: "233 Castro St, Mountain View, CA 94041", Phone: "(650) 555-0249",
			InsurancePlan: "Medi-Cal", MemberID: "MC-7763320",
			MedicalHistory: []string{"Diabetes Type 2"},
		},
		{
			Name: "Lisa Thompson-Park", DateOfBirth: "05/08/1987", Age: 39, Sex: entities.SexFemale,
			Address: "54 Willow Rd, Palo Alto, CA 94306", Phone: "(650) 555-0253",
		},
	}
}
