package models

import "fmt"

// Plan is the subscription tier of an account. Capabilities are granted by
// explicit allowed sets, never by tier ordering: premium does not inherit pro
// rights unless a capability lists both plans.
type Plan string

const (
	PlanBasic   Plan = "basic"
	PlanPro     Plan = "pro"
	PlanPremium Plan = "premium"
)

// AIEligiblePlans lists the plans allowed to use the AI prompt fallback.
var AIEligiblePlans = []Plan{PlanPro, PlanPremium}

// ParsePlan validates a raw plan value. Empty input defaults to basic.
func ParsePlan(raw string) (Plan, error) {
	if raw == "" {
		return PlanBasic, nil
	}

	plan := Plan(raw)
	if !plan.Valid() {
		return "", fmt.Errorf("unknown plan %q", raw)
	}
	return plan, nil
}

// Valid reports whether the plan is one of the known tiers.
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanPremium:
		return true
	}
	return false
}

// In reports whether the plan is a member of the allowed set.
func (p Plan) In(allowed ...Plan) bool {
	for _, a := range allowed {
		if p == a {
			return true
		}
	}
	return false
}
