package climate

import (
	"fmt"
	"math"
)

// riskConfidence is a fixed constant, not data-derived. The scoring model
// has no error estimate of its own; downstream consumers rely on this
// exact value, so it is preserved as-is.
const riskConfidence = 85.5

// Score converts a current observation plus a historical series into the
// four risk indices with explanatory assumptions.
//
// Each category averages three normalized factors and scales by 100. The
// overall risk averages the three category values as computed immediately
// after that scaling, before the per-category [0,100] clamp is applied;
// the overall value itself is then clamped. With an empty history the
// historical means fall back to the current observation's own values.
func Score(current Observation, historical []Observation) RiskAssessment {
	droughtRaw := mean(
		math.Max(0, (30-current.Rainfall)/30),
		math.Max(0, (50-current.Humidity)/50),
		math.Max(0, (current.Temperature-25)/25),
	) * 100

	floodRaw := mean(
		math.Min(1, current.Rainfall/100),
		math.Min(1, current.Humidity/100),
		math.Min(1, current.CloudCover/100),
	) * 100

	heatRaw := mean(
		math.Max(0, (current.Temperature-20)/30),
		math.Max(0, current.Humidity/100),
		math.Max(0, current.UVIndex/11),
	) * 100

	avgTemp := current.Temperature
	avgRainfall := current.Rainfall
	if len(historical) > 0 {
		var tempSum, rainSum float64
		for _, h := range historical {
			tempSum += h.Temperature
			rainSum += h.Rainfall
		}
		n := float64(len(historical))
		avgTemp = tempSum / n
		avgRainfall = rainSum / n
	}

	tempTrend := "falling"
	if current.Temperature > avgTemp {
		tempTrend = "rising"
	}
	rainfallTrend := "below_normal"
	if current.Rainfall > avgRainfall {
		rainfallTrend = "above_normal"
	}

	return RiskAssessment{
		DroughtRisk: round1(clamp(droughtRaw, 0, 100)),
		FloodRisk:   round1(clamp(floodRaw, 0, 100)),
		HeatStress:  round1(clamp(heatRaw, 0, 100)),
		OverallRisk: round1(clamp((droughtRaw+floodRaw+heatRaw)/3, 0, 100)),
		Confidence:  riskConfidence,
		Assumptions: []string{
			fmt.Sprintf("Based on current temperature: %.1f°C", current.Temperature),
			fmt.Sprintf("Historical average temperature: %.1f°C", avgTemp),
			fmt.Sprintf("Current rainfall: %.1fmm", current.Rainfall),
			fmt.Sprintf("Historical average rainfall: %.1fmm", avgRainfall),
		},
		HistoricalPatterns: HistoricalPatterns{
			TempTrend:     tempTrend,
			RainfallTrend: rainfallTrend,
		},
	}
}

func mean(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
