package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-intel/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "climate-intel",
	Short: "Climate intelligence platform",
	Long:  "Synthesizes deterministic climate data, scores drought/flood/heat risk, runs what-if scenarios, and serves the platform API with an AI advisor.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
