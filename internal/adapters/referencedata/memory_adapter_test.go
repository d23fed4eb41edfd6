package referencedata

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careroute/referral-agent/internal/domain/entities"
)

func TestMemoryAdapter_SpecialistsFor(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	// Every registry specialty has at least one specialist seeded.
	for _, specialty := range adapter.Specialties(ctx) {
		bucket := adapter.SpecialistsFor(ctx, specialty)
		require.NotEmpty(t, bucket, "specialty %s has no specialists", specialty)
		for _, rec := range bucket {
			assert.Equal(t, specialty, rec.Specialty)
			assert.NotEmpty(t, rec.Name)
			assert.NotEmpty(t, rec.LicenseID)
			assert.Greater(t, rec.Rating, 0.0)
		}
	}

	// Unknown specialty yields an empty bucket, not an error.
	assert.Empty(t, adapter.SpecialistsFor(ctx, entities.Specialty("podiatry")))
}

func TestMemoryAdapter_PlanByID(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	plan, ok := adapter.PlanByID(ctx, "Blue Cross")
	require.True(t, ok)
	assert.True(t, plan.Covers(entities.SpecialtyCardiology))
	assert.False(t, plan.Covers(entities.SpecialtyPsychiatry))
	assert.Equal(t, "$25.00", plan.Copay)

	// Kaiser covers no referral specialty.
	plan, ok = adapter.PlanByID(ctx, "Kaiser")
	require.True(t, ok)
	for _, specialty := range entities.SpecialtyRegistryOrder {
		assert.False(t, plan.Covers(specialty))
	}

	_, ok = adapter.PlanByID(ctx, "Nonexistent Plan")
	assert.False(t, ok)
}

// Unknown specialties fall back to the default code bucket; the tables
// never return an empty result.
func TestMemoryAdapter_CodeLookupFallback(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	cardiac := adapter.ProcedureCodesFor(ctx, entities.SpecialtyCardiology)
	require.NotEmpty(t, cardiac)
	assert.Equal(t, "99244", cardiac[0].Code)
	assert.NotEmpty(t, cardiac[0].Cost)

	// Psychiatry has no dedicated bucket and uses the default.
	fallback := adapter.ProcedureCodesFor(ctx, entities.SpecialtyPsychiatry)
	require.NotEmpty(t, fallback)
	assert.Equal(t, "99499", fallback[0].Code)

	diagnoses := adapter.DiagnosisCodesFor(ctx, entities.SpecialtyPsychiatry)
	require.NotEmpty(t, diagnoses)
	assert.Equal(t, "R69", diagnoses[0].Code)
	assert.Empty(t, diagnoses[0].Cost)
}

func TestMemoryAdapter_PatientByName(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	patient, ok := adapter.PatientByName(ctx, "John Smith")
	require.True(t, ok)
	assert.Equal(t, "Blue Cross", patient.InsurancePlan)
	assert.True(t, patient.HasHistory())

	// Lookup is case-insensitive.
	patient, ok = adapter.PatientByName(ctx, "john smith")
	require.True(t, ok)
	assert.Equal(t, "John Smith", patient.Name)

	_, ok = adapter.PatientByName(ctx, "Nora Quintero")
	assert.False(t, ok)
}

func TestMemoryAdapter_ReturnsCopies(t *testing.T) {
	adapter := NewMemoryAdapter()
	ctx := context.Background()

	bucket := adapter.SpecialistsFor(ctx, entities.SpecialtyCardiology)
	require.NotEmpty(t, bucket)
	bucket[0].Name = "Dr. Mutated"

	fresh := adapter.SpecialistsFor(ctx, entities.SpecialtyCardiology)
	assert.Equal(t, "Dr. Emily Chen", fresh[0].Name)
}
