package pricing

import (
	"time"

	"github.com/MyData-Folk/tariff-vision/utils"
)

// CalculatePeriodTariffs runs the tariff pipeline once per day of the
// inclusive [from, to] range and returns the results keyed by day
// (yyyy-MM-dd). The same rule snapshot serves every day, so a rule change
// mid-iteration cannot produce a mixed period. A reversed range yields an
// empty map.
func CalculatePeriodTariffs(params CalculationParams, from, to time.Time, rs RuleSet) map[string]TariffResult {
	results := make(map[string]TariffResult)
	utils.EachDay(from, to, func(day time.Time) {
		p := params
		p.Date = day
		results[utils.DayKey(day)] = CalculateTariff(p, rs)
	})
	return results
}
