package pricing_test

import (
	"testing"

	"github.com/MyData-Folk/tariff-vision/pricing"
	"github.com/stretchr/testify/assert"
)

func TestCalculateOptimizedPrice(t *testing.T) {
	t.Run("TierSelection", func(t *testing.T) {
		cases := []struct {
			name      string
			occupancy float64
			expected  float64
		}{
			{"StrongDemand", 95, 190},
			{"ExactlyEighty", 80, 190},
			{"MediumDemand", 70, 170},
			{"ExactlySixty", 60, 170},
			{"JustBelowSixty", 59, 140},
			{"WeakDemand", 10, 140},
			{"ZeroOccupancy", 0, 140},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, pricing.CalculateOptimizedPrice(tc.occupancy, 200))
			})
		}
	})

	t.Run("RoundsToNearestUnit", func(t *testing.T) {
		// 133 * 0.95 = 126.35 → 126; 133 * 0.85 = 113.05 → 113
		assert.Equal(t, 126.0, pricing.CalculateOptimizedPrice(85, 133))
		assert.Equal(t, 113.0, pricing.CalculateOptimizedPrice(65, 133))
		// 99 * 0.70 = 69.3 → 69
		assert.Equal(t, 69.0, pricing.CalculateOptimizedPrice(30, 99))
	})
}
