package server

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/sells-group/climate-intel/internal/climate"
)

type locationRequest struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (s *Server) handleClimateData(w http.ResponseWriter, r *http.Request) {
	var req locationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	bundle, err := climate.Assemble(r.Context(), req.Lat, req.Lon, s.clock.Now().UTC())
	if err != nil {
		zap.L().Error("assemble climate bundle", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	s.metrics.SynthesisCalls.Inc()

	respondJSON(w, http.StatusOK, bundle)
}

type scenarioRequest struct {
	Lat               float64 `json:"lat"`
	Lon               float64 `json:"lon"`
	RainfallChange    float64 `json:"rainfall_change"`    // percent, -100..+100
	TemperatureChange float64 `json:"temperature_change"` // degrees, -10..+10
}

func (s *Server) handleScenario(w http.ResponseWriter, r *http.Request) {
	var req scenarioRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result := climate.Simulate(req.Lat, req.Lon, s.clock.Now().UTC(), req.RainfallChange, req.TemperatureChange)
	s.metrics.ScenarioRuns.Inc()

	respondJSON(w, http.StatusOK, result)
}
