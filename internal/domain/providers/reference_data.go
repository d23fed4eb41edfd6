package providers

import (
	"context"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

// ReferenceDataProvider defines the lookup contract the pipeline depends
// on. Every method treats "absent" as a first-class result: missing plans,
// patients, or code buckets return (nil, false)-style outcomes, never
// errors, and the pipeline must degrade safely around them.
type ReferenceDataProvider interface {
	// SpecialistsFor returns the ordered specialist bucket for a specialty.
	// An unknown specialty yields an empty slice.
	SpecialistsFor(ctx context.Context, specialty entities.Specialty) []entities.SpecialistRecord

	// PlanByID looks up an insurance plan. ok is false when the plan is
	// not in the table, which is distinct from a plan that exists but
	// does not cover a specialty.
	PlanByID(ctx context.Context, planID string) (entities.InsurancePlan, bool)

	// ProcedureCodesFor returns CPT entries for a specialty, falling back
	// to the default bucket when the specialty has no entry.
	ProcedureCodesFor(ctx context.Context, specialty entities.Specialty) []entities.CodeEntry

	// DiagnosisCodesFor returns ICD-10 entries for a specialty, falling
	// back to the default bucket when the specialty has no entry.
	DiagnosisCodesFor(ctx context.Context, specialty entities.Specialty) []entities.CodeEntry

	// PatientByName looks up a patient record by exact name,
	// case-insensitively. ok is false when the patient is unknown.
	PatientByName(ctx context.Context, name string) (entities.PatientRecord, bool)

	// Specialties returns the registry keys in fixed iteration order.
	Specialties(ctx context.Context) []entities.Specialty

	// PlanIDs returns the known insurance plan identifiers.
	PlanIDs(ctx context.Context) []string
}
