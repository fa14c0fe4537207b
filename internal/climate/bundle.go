package climate

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// seriesDays is the window for the assembled historical and forecast series.
const seriesDays = 10

// Assemble builds the full climate bundle for a coordinate. The historical
// series, forecast series and sustainability trends have no data
// dependency on each other and are computed concurrently; risk scoring
// waits on current + historical. The caller's now is the shared epoch for
// every point in the bundle.
func Assemble(ctx context.Context, lat, lon float64, now time.Time) (Bundle, error) {
	bundle := Bundle{
		Location: Coordinate{Lat: lat, Lon: lon},
		Current:  Synthesize(lat, lon, now),
	}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		bundle.Historical = Historical(lat, lon, now, seriesDays)
		return nil
	})
	g.Go(func() error {
		bundle.Forecast = Forecast(lat, lon, now, seriesDays)
		return nil
	})
	g.Go(func() error {
		bundle.SustainabilityTrends = Trends(lat, lon)
		return nil
	})
	if err := g.Wait(); err != nil {
		return Bundle{}, err
	}

	bundle.RiskAssessment = Score(bundle.Current, Observations(bundle.Historical))
	return bundle, nil
}
