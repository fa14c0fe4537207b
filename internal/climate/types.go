// Package climate implements the deterministic climate-data synthesis and
// risk-scoring engine. Every component is a pure function of its inputs:
// a coordinate (and, where relevant, a date) fully determines the output,
// so regenerating any value with the same inputs is bit-identical.
package climate

// Coordinate is a geographic point. Values outside the physical ranges are
// accepted; validation, if any, belongs to the boundary layer.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Observation is a single synthetic weather record. All fields are rounded
// to one decimal except WindDirection, which is integral.
type Observation struct {
	Temperature   float64 `json:"temperature"`    // °C
	FeelsLike     float64 `json:"feels_like"`     // °C
	Humidity      float64 `json:"humidity"`       // %, clamped [0,100]
	Pressure      float64 `json:"pressure"`       // hPa
	WindSpeed     float64 `json:"wind_speed"`     // km/h, >= 0
	WindDirection float64 `json:"wind_direction"` // degrees [0,360)
	Rainfall      float64 `json:"rainfall"`       // mm, >= 0
	CloudCover    float64 `json:"cloud_cover"`    // %, clamped [0,100]
	UVIndex       float64 `json:"uv_index"`
	Visibility    float64 `json:"visibility"` // km
}

// SeriesPoint is an Observation tagged with its ISO-8601 date. Forecast
// points additionally carry a confidence percentage.
type SeriesPoint struct {
	Observation
	Date       string  `json:"date"`
	Confidence float64 `json:"confidence,omitempty"`
}

// Observations strips the date tags from a series for risk scoring.
func Observations(points []SeriesPoint) []Observation {
	obs := make([]Observation, len(points))
	for i, p := range points {
		obs[i] = p.Observation
	}
	return obs
}

// HistoricalPatterns summarizes the current observation against the
// historical mean with categorical trend labels.
type HistoricalPatterns struct {
	TempTrend     string `json:"temp_trend"`     // "rising" or "falling"
	RainfallTrend string `json:"rainfall_trend"` // "above_normal" or "below_normal"
}

// RiskAssessment holds the derived risk indices, each clamped to [0,100],
// plus the assumptions that explain them.
type RiskAssessment struct {
	DroughtRisk        float64            `json:"drought_risk"`
	FloodRisk          float64            `json:"flood_risk"`
	HeatStress         float64            `json:"heat_stress"`
	OverallRisk        float64            `json:"overall_risk"`
	Confidence         float64            `json:"confidence"`
	Assumptions        []string           `json:"assumptions"`
	HistoricalPatterns HistoricalPatterns `json:"historical_patterns"`
}

// GroundwaterTrend reports the groundwater level indicator group.
type GroundwaterTrend struct {
	Current       float64 `json:"current"` // meters below surface (negative)
	ChangePercent float64 `json:"change_percent"`
	Trend         string  `json:"trend"` // "declining" or "stable"
}

// CropYieldTrend reports the crop yield index group.
type CropYieldTrend struct {
	Current       float64 `json:"current"`
	ChangePercent float64 `json:"change_percent"`
	Trend         string  `json:"trend"` // "improving" or "declining"
}

// TemperatureAnomaly reports the long-horizon temperature anomaly group.
type TemperatureAnomaly struct {
	Current   float64 `json:"current"`
	Change5yr float64 `json:"change_5yr"`
	Trend     string  `json:"trend"` // always "rising"
}

// AirQuality reports the air quality index group.
type AirQuality struct {
	Current  float64 `json:"current"`
	Category string  `json:"category"` // "moderate" or "good"
}

// CarbonFootprint reports regional carbon output against a national baseline.
type CarbonFootprint struct {
	RegionalAvg float64 `json:"regional_avg"`
	NationalAvg float64 `json:"national_avg"`
	Trend       string  `json:"trend"` // "decreasing" or "stable"
}

// SustainabilityTrends bundles the five longer-horizon indicator groups.
// Unlike weather, the bundle is stable across calendar days for a
// coordinate because its seed omits the day term.
type SustainabilityTrends struct {
	GroundwaterLevel   GroundwaterTrend   `json:"groundwater_level"`
	CropYieldIndex     CropYieldTrend     `json:"crop_yield_index"`
	TemperatureAnomaly TemperatureAnomaly `json:"temperature_anomaly"`
	AirQualityIndex    AirQuality         `json:"air_quality_index"`
	CarbonFootprint    CarbonFootprint    `json:"carbon_footprint"`
}

// ScenarioImpact summarizes the applied perturbation and the per-category
// risk deltas (perturbed minus baseline, rounded to one decimal).
type ScenarioImpact struct {
	RainfallChangeApplied    string  `json:"rainfall_change_applied"`
	TemperatureChangeApplied string  `json:"temperature_change_applied"`
	DroughtRiskChange        float64 `json:"drought_risk_change"`
	FloodRiskChange          float64 `json:"flood_risk_change"`
	HeatStressChange         float64 `json:"heat_stress_change"`
}

// ScenarioResult is the full output of a scenario simulation.
type ScenarioResult struct {
	OriginalWeather Observation    `json:"original_weather"`
	ModifiedWeather Observation    `json:"modified_weather"`
	OriginalRisk    RiskAssessment `json:"original_risk"`
	ModifiedRisk    RiskAssessment `json:"modified_risk"`
	ScenarioImpact  ScenarioImpact `json:"scenario_impact"`
}

// Bundle is the assembled climate response for one coordinate.
type Bundle struct {
	Location             Coordinate           `json:"location"`
	Current              Observation          `json:"current"`
	Historical           []SeriesPoint        `json:"historical"`
	Forecast             []SeriesPoint        `json:"forecast"`
	RiskAssessment       RiskAssessment       `json:"risk_assessment"`
	SustainabilityTrends SustainabilityTrends `json:"sustainability_trends"`
}
