package server

import (
	_ "embed"
	"net/http"
	"sync"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed layers.yaml
var layersYAML []byte

// MapLayer describes one renderable map overlay.
type MapLayer struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Unit     string   `yaml:"unit" json:"unit"`
	Gradient []string `yaml:"gradient" json:"gradient"`
}

type layerCatalog struct {
	Layers []MapLayer `yaml:"layers" json:"layers"`
}

var (
	layersOnce sync.Once
	layers     layerCatalog
	layersErr  error
)

func loadLayers() (layerCatalog, error) {
	layersOnce.Do(func() {
		layersErr = yaml.Unmarshal(layersYAML, &layers)
	})
	return layers, layersErr
}

func (s *Server) handleLayers(w http.ResponseWriter, r *http.Request) {
	catalog, err := loadLayers()
	if err != nil {
		zap.L().Error("load layer catalog", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	respondJSON(w, http.StatusOK, catalog)
}
