// Package pricing implements the tariff rules and calculation engine: pure
// functions that thread a base nightly rate through category rules, plan
// rule formulas and partner adjustments, plus the yield optimizer and the
// comparison chart transformer. Nothing in this package performs I/O; all
// rule collections arrive materialized inside a RuleSet snapshot and every
// function is a pure function of its inputs.
package pricing

import (
	"sort"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
)

// RuleSet is an immutable snapshot of every rule collection a calculation
// needs. Callers build one per request (or reuse a cached copy); the engine
// never mutates it, so snapshots are safe to share across goroutines.
type RuleSet struct {
	// DailyRates keyed by calendar day (yyyy-MM-dd)
	DailyRates map[string]models.DailyRate

	CategoryRules      []models.CategoryRule
	PlanRules          []models.PlanRule
	PartnerAdjustments []models.PartnerAdjustment
}

// NewRuleSet assembles a snapshot from raw collections, indexing daily rates
// by calendar day.
func NewRuleSet(
	dailyRates []models.DailyRate,
	categoryRules []models.CategoryRule,
	planRules []models.PlanRule,
	adjustments []models.PartnerAdjustment,
) RuleSet {
	byDay := make(map[string]models.DailyRate, len(dailyRates))
	for _, dr := range dailyRates {
		byDay[utils.DayKey(dr.Date)] = dr
	}
	return RuleSet{
		DailyRates:         byDay,
		CategoryRules:      categoryRules,
		PlanRules:          planRules,
		PartnerAdjustments: adjustments,
	}
}

// CategoryRule returns the rule for a category, or nil when none exists.
// First match wins; the repository boundary already warns on duplicates.
func (rs RuleSet) CategoryRule(categoryID uint) *models.CategoryRule {
	for i := range rs.CategoryRules {
		if rs.CategoryRules[i].CategoryID == categoryID {
			return &rs.CategoryRules[i]
		}
	}
	return nil
}

// PlanRule returns the rule for a plan, or nil when none exists.
func (rs RuleSet) PlanRule(planID uint) *models.PlanRule {
	for i := range rs.PlanRules {
		if rs.PlanRules[i].PlanID == planID {
			return &rs.PlanRules[i]
		}
	}
	return nil
}

// AdjustmentsForPartner returns every adjustment belonging to a partner,
// in ascending id order.
func (rs RuleSet) AdjustmentsForPartner(partnerID uint) []models.PartnerAdjustment {
	var out []models.PartnerAdjustment
	for _, adj := range rs.PartnerAdjustments {
		if adj.PartnerID == partnerID {
			out = append(out, adj)
		}
	}
	sortAdjustments(out)
	return out
}

// AdjustmentsByIDs resolves a selection of adjustment ids to records,
// in ascending id order regardless of selection order, so a calculation is
// reproducible whatever order the UI submitted the ids in. Unknown ids are
// ignored.
func (rs RuleSet) AdjustmentsByIDs(ids []uint) []models.PartnerAdjustment {
	wanted := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	var out []models.PartnerAdjustment
	for _, adj := range rs.PartnerAdjustments {
		if _, ok := wanted[adj.ID]; ok {
			out = append(out, adj)
		}
	}
	sortAdjustments(out)
	return out
}

func sortAdjustments(adjs []models.PartnerAdjustment) {
	sort.Slice(adjs, func(i, j int) bool {
		return adjs[i].ID < adjs[j].ID
	})
}
