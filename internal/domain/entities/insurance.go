package entities

// CoverageStatus represents the insurance coverage verdict tier
type CoverageStatus string

const (
	CoverageInNetwork    CoverageStatus = "in-network"
	CoverageOutOfNetwork CoverageStatus = "out-of-network"
	CoverageSelfPay      CoverageStatus = "self-pay"
)

// FullPatientResponsibility is the copay sentinel used whenever the plan
// does not cover the visit.
const FullPatientResponsibility = "100% Patient Responsibility"

// UninsuredPlanName labels verdicts produced without a known plan
const UninsuredPlanName = "Uninsured"

// InsurancePlan represents an insurance plan and its coverage rules
type InsurancePlan struct {
	PlanID             string      `json:"plan_id"`
	CoveredSpecialties []Specialty `json:"covered_specialties"`
	Copay              string      `json:"copay"`
	Deductible         string      `json:"deductible"`
	PriorAuthRequired  []Specialty `json:"prior_auth_required,omitempty"`
}

// Covers reports whether the plan covers the given specialty
func (p InsurancePlan) Covers(s Specialty) bool {
	for _, covered := range p.CoveredSpecialties {
		if covered == s {
			return true
		}
	}
	return false
}

// RequiresPriorAuth reports whether the plan requires prior authorization
// for the given specialty
func (p InsurancePlan) RequiresPriorAuth(s Specialty) bool {
	for _, required := range p.PriorAuthRequired {
		if required == s {
			return true
		}
	}
	return false
}

// CoverageVerdict is the adjudication result for one specialty/plan pair
type CoverageVerdict struct {
	PlanID     string         `json:"plan_id"`
	Status     CoverageStatus `json:"status"`
	Copay      string         `json:"copay"`
	Deductible string         `json:"deductible,omitempty"`
	PriorAuth  bool           `json:"prior_auth_required,omitempty"`
}
