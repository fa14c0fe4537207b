package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/climate-intel/internal/climate"
)

var (
	synthLat float64
	synthLon float64
)

var synthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesize the climate bundle for a coordinate and print it as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("synth"); err != nil {
			return err
		}

		bundle, err := climate.Assemble(cmd.Context(), synthLat, synthLon, time.Now().UTC())
		if err != nil {
			return eris.Wrap(err, "assemble bundle")
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(bundle), "encode bundle")
	},
}

func init() {
	synthCmd.Flags().Float64Var(&synthLat, "lat", 0, "latitude")
	synthCmd.Flags().Float64Var(&synthLon, "lon", 0, "longitude")
	_ = synthCmd.MarkFlagRequired("lat")
	_ = synthCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(synthCmd)
}
