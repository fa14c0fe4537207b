package climate

import (
	"math"
	"math/rand"
	"time"
)

// seedModulus bounds the coordinate-derived seed to [0, 10000).
const seedModulus = 10000

// deriveSeed maps a coordinate to its base seed. The residue is normalized
// to be non-negative so southern and western coordinates land in the same
// [0, seedModulus) range as the rest.
func deriveSeed(lat, lon float64) int64 {
	base := int64(math.Mod(lat*1000+lon*100, seedModulus))
	if base < 0 {
		base += seedModulus
	}
	return base
}

// newStream constructs a call-scoped random stream for the given seed.
// Each synthesis call owns its own generator instance; nothing is shared
// across calls, so concurrent synthesis is safe.
func newStream(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// uniform draws the next value in [lo, hi) from the stream.
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Synthesize produces the deterministic weather observation for a
// coordinate and date. The seed combines the coordinate residue with the
// day of month, and every field consumes draws from the stream in a fixed
// order: temperature, feels-like, humidity, pressure, wind speed, wind
// direction, rainfall, cloud cover, UV index, visibility. Reordering the
// draws changes every downstream value, so the order is load-bearing.
func Synthesize(lat, lon float64, date time.Time) Observation {
	rng := newStream(deriveSeed(lat, lon) + int64(date.Day()))

	temp := 25 - math.Abs(lat)*0.5 + uniform(rng, -5, 5)
	feelsLike := temp + uniform(rng, -3, 3)
	humidity := clamp(50+uniform(rng, -20, 30), 0, 100)
	pressure := 1013 + uniform(rng, -20, 20)
	windSpeed := math.Max(0, uniform(rng, 0, 25))
	// A draw at the top of the range rounds to 360; wrap it back to 0.
	windDirection := math.Mod(math.Round(uniform(rng, 0, 360)), 360)
	rainfall := math.Max(0, uniform(rng, -10, 50))
	cloudCover := uniform(rng, 0, 100)
	uvIndex := uniform(rng, 1, 11)
	visibility := uniform(rng, 5, 20)

	return Observation{
		Temperature:   round1(temp),
		FeelsLike:     round1(feelsLike),
		Humidity:      round1(humidity),
		Pressure:      round1(pressure),
		WindSpeed:     round1(windSpeed),
		WindDirection: windDirection,
		Rainfall:      round1(rainfall),
		CloudCover:    round1(cloudCover),
		UVIndex:       round1(uvIndex),
		Visibility:    round1(visibility),
	}
}
