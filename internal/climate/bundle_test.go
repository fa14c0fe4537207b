package climate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssemble(t *testing.T) {
	bundle, err := Assemble(context.Background(), 13.0827, 80.2707, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, Coordinate{Lat: 13.0827, Lon: 80.2707}, bundle.Location)
	assert.Equal(t, Synthesize(13.0827, 80.2707, fixedNow), bundle.Current)
	assert.Len(t, bundle.Historical, 10)
	assert.Len(t, bundle.Forecast, 10)
	assert.Equal(t, Trends(13.0827, 80.2707), bundle.SustainabilityTrends)

	// Risk is scored against the bundle's own history.
	assert.Equal(t, Score(bundle.Current, Observations(bundle.Historical)), bundle.RiskAssessment)
}

func TestAssemble_Deterministic(t *testing.T) {
	a, err := Assemble(context.Background(), -23.5505, -46.6333, fixedNow)
	require.NoError(t, err)
	b, err := Assemble(context.Background(), -23.5505, -46.6333, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
