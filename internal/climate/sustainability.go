package climate

import "math"

// carbonNationalAvg is the fixed national baseline (tonnes CO2e per capita).
const carbonNationalAvg = 8.5

// Trends produces the sustainability indicator bundle for a coordinate.
// The seed omits the day term, so the bundle is stable across calendar
// days, unlike weather. Each group consumes its draws in declaration
// order; the trend rolls use per-group probability thresholds that define
// the boundary behavior under a fixed seed.
func Trends(lat, lon float64) SustainabilityTrends {
	rng := newStream(deriveSeed(lat, lon))

	groundwater := GroundwaterTrend{
		Current:       round1(uniform(rng, -15, -5)),
		ChangePercent: round1(uniform(rng, -10, 5)),
		Trend:         pick(rng.Float64() > 0.5, "declining", "stable"),
	}
	cropYield := CropYieldTrend{
		Current:       round1(uniform(rng, 70, 100)),
		ChangePercent: round1(uniform(rng, -15, 15)),
		Trend:         pick(rng.Float64() > 0.4, "improving", "declining"),
	}
	anomaly := TemperatureAnomaly{
		Current:   round2(uniform(rng, 0.5, 2.5)),
		Change5yr: round2(uniform(rng, 0.3, 1.5)),
		Trend:     "rising",
	}
	airQuality := AirQuality{
		Current:  math.Round(uniform(rng, 30, 150)),
		Category: pick(rng.Float64() > 0.5, "moderate", "good"),
	}
	carbon := CarbonFootprint{
		RegionalAvg: round1(uniform(rng, 5, 15)),
		NationalAvg: carbonNationalAvg,
		Trend:       pick(rng.Float64() > 0.6, "decreasing", "stable"),
	}

	return SustainabilityTrends{
		GroundwaterLevel:   groundwater,
		CropYieldIndex:     cropYield,
		TemperatureAnomaly: anomaly,
		AirQualityIndex:    airQuality,
		CarbonFootprint:    carbon,
	}
}

func pick(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}
