package advisor

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/sells-group/climate-intel/internal/climate"
	"github.com/sells-group/climate-intel/pkg/oracle"
)

const recommendSystemPrompt = `You are a sustainability advisor. Based on climate risk data, provide specific recommendations for:
1. Water management strategies
2. Suitable crops for current conditions
3. Disaster preparedness actions
4. Carbon footprint reduction

Format your response as JSON with keys: water_management, crop_suggestions, disaster_prep, carbon_tips
Each should be a list of 2-3 actionable items.`

const tamilRecommendAddendum = "\n\nProvide recommendations in Tamil language."

// RecommendationResult carries either the model's answer or the static
// fallback sets when the oracle is unavailable.
type RecommendationResult struct {
	// Recommendations is the model's raw text, or a FallbackSets value.
	Recommendations any                `json:"recommendations"`
	GeneratedAt     string             `json:"generated_at"`
	Location        climate.Coordinate `json:"location"`
	IsFallback      bool               `json:"is_fallback,omitempty"`
}

// FallbackSets are the canned recommendations served when the model cannot
// be reached.
type FallbackSets struct {
	WaterManagement []string `json:"water_management"`
	CropSuggestions []string `json:"crop_suggestions"`
	DisasterPrep    []string `json:"disaster_prep"`
	CarbonTips      []string `json:"carbon_tips"`
}

func fallbackRecommendations() FallbackSets {
	return FallbackSets{
		WaterManagement: []string{
			"Implement drip irrigation systems",
			"Install rainwater harvesting",
			"Monitor groundwater levels weekly",
		},
		CropSuggestions: []string{
			"Consider drought-resistant varieties",
			"Plant cover crops to retain moisture",
			"Adjust planting schedule based on forecasts",
		},
		DisasterPrep: []string{
			"Create emergency water storage",
			"Develop evacuation plans",
			"Install early warning systems",
		},
		CarbonTips: []string{
			"Use renewable energy sources",
			"Practice no-till farming",
			"Plant trees for carbon sequestration",
		},
	}
}

// Recommend asks the oracle for location-specific guidance based on the risk
// scores. Oracle failures degrade to the fallback sets rather than an error.
func (a *Advisor) Recommend(ctx context.Context, lat, lon float64, risk climate.RiskAssessment, lang string) *RecommendationResult {
	system := recommendSystemPrompt
	if lang == "ta" {
		system += tamilRecommendAddendum
	}

	summary := fmt.Sprintf(`
Location: %g, %g
Drought Risk: %g%%
Flood Risk: %g%%
Heat Stress: %g%%
`, lat, lon, risk.DroughtRisk, risk.FloodRisk, risk.HeatStress)

	result := &RecommendationResult{
		GeneratedAt: a.clock.Now().UTC().Format(time.RFC3339),
		Location:    climate.Coordinate{Lat: lat, Lon: lon},
	}

	response, err := a.oracle.Ask(ctx, system, []oracle.Message{
		{Role: "user", Content: "Provide recommendations for: " + summary},
	})
	if err != nil {
		zap.L().Warn("recommendations fell back to static sets", zap.Error(err))
		result.Recommendations = fallbackRecommendations()
		result.IsFallback = true
		return result
	}

	result.Recommendations = response
	return result
}
