package pricing

import "log"

// CalculateCategoryRate derives a category's rate from a reference
// category's known rate. The reference category is by definition priced at
// the base rate, so asking for the reference itself returns baseRate
// untouched. Otherwise the requested category's own rule is applied to the
// base rate; a missing rule degrades to identity with a diagnostic.
func CalculateCategoryRate(baseRate float64, categoryID, referenceCategoryID uint, rs RuleSet) float64 {
	if categoryID == referenceCategoryID {
		return baseRate
	}
	rule := rs.CategoryRule(categoryID)
	if rule == nil {
		log.Printf("pricing: no category rule for category %d, returning base rate", categoryID)
		return baseRate
	}
	return ApplyCategoryRule(baseRate, rule)
}

// CalculatePlanRate is the plan counterpart of CalculateCategoryRate.
func CalculatePlanRate(baseRate float64, planID, referencePlanID uint, rs RuleSet) float64 {
	if planID == referencePlanID {
		return baseRate
	}
	rule := rs.PlanRule(planID)
	if rule == nil {
		log.Printf("pricing: no plan rule for plan %d, returning base rate", planID)
		return baseRate
	}
	return ApplyPlanRule(baseRate, rule)
}
