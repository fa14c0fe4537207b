package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrends_Deterministic(t *testing.T) {
	a := Trends(13.0827, 80.2707)
	b := Trends(13.0827, 80.2707)
	assert.Equal(t, a, b)
}

func TestTrends_IndependentOfWeatherSynthesis(t *testing.T) {
	// Streams are call-scoped: interleaved synthesis must not perturb the
	// sustainability draws.
	a := Trends(13.0827, 80.2707)
	_ = Synthesize(13.0827, 80.2707, fixedDate)
	_ = Forecast(13.0827, 80.2707, fixedNow, 10)
	b := Trends(13.0827, 80.2707)
	assert.Equal(t, a, b)
}

func TestTrends_Ranges(t *testing.T) {
	for _, c := range []Coordinate{
		{13.0827, 80.2707}, {0, 0}, {-33.8688, 151.2093}, {1000, -10000},
	} {
		tr := Trends(c.Lat, c.Lon)

		assert.GreaterOrEqual(t, tr.GroundwaterLevel.Current, -15.0)
		assert.LessOrEqual(t, tr.GroundwaterLevel.Current, -5.0)
		assert.GreaterOrEqual(t, tr.GroundwaterLevel.ChangePercent, -10.0)
		assert.LessOrEqual(t, tr.GroundwaterLevel.ChangePercent, 5.0)
		assert.Contains(t, []string{"declining", "stable"}, tr.GroundwaterLevel.Trend)

		assert.GreaterOrEqual(t, tr.CropYieldIndex.Current, 70.0)
		assert.LessOrEqual(t, tr.CropYieldIndex.Current, 100.0)
		assert.GreaterOrEqual(t, tr.CropYieldIndex.ChangePercent, -15.0)
		assert.LessOrEqual(t, tr.CropYieldIndex.ChangePercent, 15.0)
		assert.Contains(t, []string{"improving", "declining"}, tr.CropYieldIndex.Trend)

		assert.GreaterOrEqual(t, tr.TemperatureAnomaly.Current, 0.5)
		assert.LessOrEqual(t, tr.TemperatureAnomaly.Current, 2.5)
		assert.GreaterOrEqual(t, tr.TemperatureAnomaly.Change5yr, 0.3)
		assert.LessOrEqual(t, tr.TemperatureAnomaly.Change5yr, 1.5)
		assert.Equal(t, "rising", tr.TemperatureAnomaly.Trend)

		assert.GreaterOrEqual(t, tr.AirQualityIndex.Current, 30.0)
		assert.LessOrEqual(t, tr.AirQualityIndex.Current, 150.0)
		assert.Contains(t, []string{"moderate", "good"}, tr.AirQualityIndex.Category)

		assert.GreaterOrEqual(t, tr.CarbonFootprint.RegionalAvg, 5.0)
		assert.LessOrEqual(t, tr.CarbonFootprint.RegionalAvg, 15.0)
		assert.Equal(t, 8.5, tr.CarbonFootprint.NationalAvg)
		assert.Contains(t, []string{"decreasing", "stable"}, tr.CarbonFootprint.Trend)
	}
}

func TestTrends_VariesByCoordinate(t *testing.T) {
	assert.NotEqual(t, Trends(13.0827, 80.2707), Trends(51.5074, -0.1278))
}
