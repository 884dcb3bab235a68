package pricing

import (
	"math"
	"strings"
	"time"

	"github.com/MyData-Folk/tariff-vision/models"
	"github.com/MyData-Folk/tariff-vision/utils"
)

// alternateChannelKeyword flags partners whose rates come from the
// secondary channel column instead of the OTA one.
const alternateChannelKeyword = "travco"

// alternateChannelDampening is applied to estimated base rates on the
// alternate channel, which historically quotes below OTA.
const alternateChannelDampening = 0.9

// DateRange is an inclusive [From, To] day span.
type DateRange struct {
	From time.Time
	To   time.Time
}

// PartnerPlanSelection is one partner+plan series requested for the
// comparison chart. Multiplier and Offset, when both present, come from the
// persisted plan rule and take precedence over any keyword heuristic.
type PartnerPlanSelection struct {
	PartnerName    string
	PartnerChannel string
	PlanName       string
	PlanCode       string
	Multiplier     *float64
	Offset         *float64
}

// ChartOptions tunes the comparison transformer.
type ChartOptions struct {
	// LegacyKeywordMultipliers enables the historical substring heuristic
	// that guesses a multiplier from the plan code when no rule-derived
	// multiplier is stored. Off by default; without it an unruled series
	// falls back to the plain base rate.
	LegacyKeywordMultipliers bool
}

// ChartPoint is one day of the comparison chart, one value per selected
// partner+plan series keyed "<partner> - <plan>".
type ChartPoint struct {
	Date   string             `json:"date"`
	Series map[string]float64 `json:"series"`
}

// keywordMultiplier guesses a multiplier from the plan code. Substring
// match, case-insensitive, first hit wins.
func keywordMultiplier(planCode string) float64 {
	code := strings.ToLower(planCode)
	switch {
	case strings.Contains(code, "standard"):
		return 1.00
	case strings.Contains(code, "flexible"):
		return 1.15
	case strings.Contains(code, "discount"), strings.Contains(code, "non-remboursable"):
		return 0.90
	case strings.Contains(code, "premium"):
		return 1.25
	default:
		return 1.00
	}
}

func isAlternateChannel(sel PartnerPlanSelection) bool {
	return strings.Contains(strings.ToLower(sel.PartnerName), alternateChannelKeyword) ||
		strings.Contains(strings.ToLower(sel.PartnerChannel), alternateChannelKeyword)
}

// seriesMultiplier resolves the multiplier/offset pair for one selection:
// the persisted rule-derived pair when stored, else the keyword heuristic
// when enabled, else identity.
func seriesMultiplier(sel PartnerPlanSelection, opts ChartOptions) (multiplier, offset float64) {
	if sel.Multiplier != nil {
		offset = 0
		if sel.Offset != nil {
			offset = *sel.Offset
		}
		return *sel.Multiplier, offset
	}
	if opts.LegacyKeywordMultipliers {
		return keywordMultiplier(sel.PlanCode), 0
	}
	return 1.00, 0
}

// TransformDataForChart expands a date range into one ChartPoint per day.
// Days with a stored rate use it; days without one use the weekday/weekend
// fallback estimate (dampened on the alternate channel) so the chart never
// has holes. Both paths share the same multiplier resolution, keeping real
// and estimated values numerically consistent.
func TransformDataForChart(dailyRates map[string]models.DailyRate, dateRange DateRange, selections []PartnerPlanSelection, opts ChartOptions) []ChartPoint {
	var points []ChartPoint
	utils.EachDay(dateRange.From, dateRange.To, func(day time.Time) {
		key := utils.DayKey(day)
		stored, hasStored := dailyRates[key]

		series := make(map[string]float64, len(selections))
		for _, sel := range selections {
			alternate := isAlternateChannel(sel)

			var base float64
			if hasStored {
				if alternate {
					base = stored.TravcoRate
				} else {
					base = stored.OTARate
				}
			} else {
				if utils.IsWeekend(day) {
					base = WeekendFallbackRate
				} else {
					base = WeekdayFallbackRate
				}
				if alternate {
					base *= alternateChannelDampening
				}
			}

			multiplier, offset := seriesMultiplier(sel, opts)
			series[sel.PartnerName+" - "+sel.PlanName] = math.Round(base*multiplier + offset)
		}

		points = append(points, ChartPoint{Date: key, Series: series})
	})
	return points
}
