package climate

import (
	"fmt"
	"math"
	"time"
)

// scenarioHistoryDays is the fixed comparison window for scenario scoring.
const scenarioHistoryDays = 10

// Simulate applies a rainfall/temperature perturbation to the baseline
// observation for a coordinate and reports how the risk indices move.
//
// One 10-day history is generated and reused for both the baseline and
// the perturbed scoring: the scenario measures sensitivity against a
// fixed historical reference, not two independent histories. The baseline
// risk is likewise computed once and reused for both the response body
// and the deltas, so the deltas are self-consistent by construction.
func Simulate(lat, lon float64, now time.Time, rainfallChangePct, temperatureChange float64) ScenarioResult {
	baseline := Synthesize(lat, lon, now)

	perturbed := baseline
	perturbed.Rainfall = math.Max(0, baseline.Rainfall*(1+rainfallChangePct/100))
	perturbed.Temperature = baseline.Temperature + temperatureChange
	perturbed.Humidity = clamp(baseline.Humidity*(1+rainfallChangePct/200), 0, 100)

	historical := Observations(Historical(lat, lon, now, scenarioHistoryDays))
	baselineRisk := Score(baseline, historical)
	perturbedRisk := Score(perturbed, historical)

	return ScenarioResult{
		OriginalWeather: baseline,
		ModifiedWeather: perturbed,
		OriginalRisk:    baselineRisk,
		ModifiedRisk:    perturbedRisk,
		ScenarioImpact: ScenarioImpact{
			RainfallChangeApplied:    fmt.Sprintf("%+.1f%%", rainfallChangePct),
			TemperatureChangeApplied: fmt.Sprintf("%+.1f°C", temperatureChange),
			DroughtRiskChange:        round1(perturbedRisk.DroughtRisk - baselineRisk.DroughtRisk),
			FloodRiskChange:          round1(perturbedRisk.FloodRisk - baselineRisk.FloodRisk),
			HeatStressChange:         round1(perturbedRisk.HeatStress - baselineRisk.HeatStress),
		},
	}
}
