package main

import (
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/climate-intel/internal/climate"
	"github.com/sells-group/climate-intel/internal/export"
)

var (
	exportLat float64
	exportLon float64
	exportOut string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a coordinate's historical and forecast series to an .xlsx workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("synth"); err != nil {
			return err
		}

		bundle, err := climate.Assemble(cmd.Context(), exportLat, exportLon, time.Now().UTC())
		if err != nil {
			return eris.Wrap(err, "assemble bundle")
		}

		if err := export.WriteWorkbook(exportOut, bundle); err != nil {
			return err
		}

		zap.L().Info("workbook written",
			zap.String("path", exportOut),
			zap.Float64("lat", exportLat),
			zap.Float64("lon", exportLon),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().Float64Var(&exportLat, "lat", 0, "latitude")
	exportCmd.Flags().Float64Var(&exportLon, "lon", 0, "longitude")
	exportCmd.Flags().StringVar(&exportOut, "out", "climate.xlsx", "output workbook path")
	_ = exportCmd.MarkFlagRequired("lat")
	_ = exportCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(exportCmd)
}
