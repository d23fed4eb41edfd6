package services

import (
	"context"

	"github.com/careroute/referral-agent/internal/domain/entities"
	"github.com/careroute/referral-agent/internal/domain/providers"
)

// CoverageAdjudicator decides the payment tier for a specialty visit under
// a patient's insurance plan.
type CoverageAdjudicator struct {
	refData providers.ReferenceDataProvider
}

// NewCoverageAdjudicator creates a new coverage adjudicator backed by the
// given reference data provider.
func NewCoverageAdjudicator(refData providers.ReferenceDataProvider) *CoverageAdjudicator {
	return &CoverageAdjudicator{refData: refData}
}

// Adjudicate maps a specialty/plan pair to a coverage verdict. A missing or
// unknown plan always resolves to self-pay rather than an error: absence of
// insurance information is an expected state, not a failure.
func (a *CoverageAdjudicator) Adjudicate(ctx context.Context, specialty entities.Specialty, planID string) entities.CoverageVerdict {
	if planID == "" {
		return selfPayVerdict()
	}

	plan, ok := a.refData.PlanByID(ctx, planID)
	if !ok {
		return selfPayVerdict()
	}

	if !plan.Covers(specialty) {
		return entities.CoverageVerdict{
			PlanID:     plan.PlanID,
			Status:     entities.CoverageOutOfNetwork,
			Copay:      entities.FullPatientResponsibility,
			Deductible: plan.Deductible,
		}
	}

	return entities.CoverageVerdict{
		PlanID:     plan.PlanID,
		Status:     entities.CoverageInNetwork,
		Copay:      plan.Copay,
		Deductible: plan.Deductible,
		PriorAuth:  plan.RequiresPriorAuth(specialty),
	}
}

func selfPayVerdict() entities.CoverageVerdict {
	return entities.CoverageVerdict{
		PlanID: entities.UninsuredPlanName,
		Status: entities.CoverageSelfPay,
		Copay:  entities.FullPatientResponsibility,
	}
}
