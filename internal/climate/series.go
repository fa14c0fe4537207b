package climate

import (
	"slices"
	"time"
)

// Forecast confidence starts near-certain and decays 4 points per day out,
// floored at 50.
const (
	forecastBaseConfidence  = 95
	forecastDecayPerDay     = 4
	forecastFloorConfidence = 50
)

// Historical synthesizes observations for the days days strictly before
// now (offsets 1..days) and returns them oldest-first. The caller supplies
// now so that every point in an outer request shares one epoch.
func Historical(lat, lon float64, now time.Time, days int) []SeriesPoint {
	points := make([]SeriesPoint, 0, days)
	for i := 1; i <= days; i++ {
		date := now.AddDate(0, 0, -i)
		points = append(points, SeriesPoint{
			Observation: Synthesize(lat, lon, date),
			Date:        date.UTC().Format(time.RFC3339),
		})
	}
	// Generated most-recent-first; callers expect ascending dates.
	slices.Reverse(points)
	return points
}

// Forecast synthesizes observations for the days days strictly after now
// (offsets 1..days, ascending) and attaches a confidence that decreases
// monotonically with distance into the future.
func Forecast(lat, lon float64, now time.Time, days int) []SeriesPoint {
	points := make([]SeriesPoint, 0, days)
	for i := 1; i <= days; i++ {
		date := now.AddDate(0, 0, i)
		points = append(points, SeriesPoint{
			Observation: Synthesize(lat, lon, date),
			Date:        date.UTC().Format(time.RFC3339),
			Confidence:  forecastConfidence(i),
		})
	}
	return points
}

func forecastConfidence(offset int) float64 {
	c := float64(forecastBaseConfidence - forecastDecayPerDay*offset)
	if c < forecastFloorConfidence {
		return forecastFloorConfidence
	}
	return c
}
