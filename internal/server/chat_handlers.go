package server

import (
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/climate-intel/internal/climate"
	"github.com/sells-group/climate-intel/internal/model"
	"github.com/sells-group/climate-intel/internal/store"
)

type chatRequest struct {
	Message  string `json:"message"`
	Language string `json:"language"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		respondError(w, http.StatusBadRequest, "Message required")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	user := currentUser(r.Context())
	reply, err := s.advisor.Chat(r.Context(), user.ID, req.Message, req.Language)
	if err != nil {
		s.metrics.OracleRequests.WithLabelValues("chat", "error").Inc()
		zap.L().Error("chat", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "AI service error")
		return
	}
	s.metrics.OracleRequests.WithLabelValues("chat", "success").Inc()

	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleChatHistory(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	user := currentUser(r.Context())
	records, err := s.advisor.History(r.Context(), user.ID, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if records == nil {
		records = []model.ChatRecord{}
	}
	respondJSON(w, http.StatusOK, map[string]any{"history": records})
}

type recommendationRequest struct {
	Lat      float64        `json:"lat"`
	Lon      float64        `json:"lon"`
	RiskData map[string]any `json:"risk_data"`
	Language string         `json:"language"`
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	var req recommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Language == "" {
		req.Language = "en"
	}

	risk := climate.RiskAssessment{
		DroughtRisk: numberField(req.RiskData, "drought_risk"),
		FloodRisk:   numberField(req.RiskData, "flood_risk"),
		HeatStress:  numberField(req.RiskData, "heat_stress"),
	}

	result := s.advisor.Recommend(r.Context(), req.Lat, req.Lon, risk, req.Language)
	if result.IsFallback {
		s.metrics.OracleRequests.WithLabelValues("recommendations", "fallback").Inc()
	} else {
		s.metrics.OracleRequests.WithLabelValues("recommendations", "success").Inc()
	}

	respondJSON(w, http.StatusOK, result)
}

type languageRequest struct {
	Language string `json:"language"`
}

func (s *Server) handleLanguage(w http.ResponseWriter, r *http.Request) {
	var req languageRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user := currentUser(r.Context())
	if err := s.advisor.SetLanguage(r.Context(), user.ID, req.Language); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		respondError(w, http.StatusBadRequest, "Supported languages: en, ta")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message":  "Language updated",
		"language": req.Language,
	})
}

// numberField pulls a float out of loosely typed request JSON.
func numberField(m map[string]any, key string) float64 {
	if v, ok := m[key]; ok {
		if f, ok := v.(float64); ok {
			return f
		}
	}
	return 0
}
