// Package export writes synthesized climate series to spreadsheet workbooks.
package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/climate-intel/internal/climate"
)

var seriesHeader = []string{
	"date", "temperature", "feels_like", "humidity", "pressure",
	"wind_speed", "wind_direction", "rainfall", "cloud_cover",
	"uv_index", "visibility",
}

// WriteWorkbook writes the bundle's historical and forecast series to an
// .xlsx workbook at path, one sheet per series. Forecast rows carry an
// extra confidence column.
func WriteWorkbook(path string, bundle climate.Bundle) error {
	f := xlsx.NewFile()

	if err := addSeriesSheet(f, "Historical", bundle.Historical, false); err != nil {
		return err
	}
	if err := addSeriesSheet(f, "Forecast", bundle.Forecast, true); err != nil {
		return err
	}

	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save workbook %s", path)
	}
	return nil
}

func addSeriesSheet(f *xlsx.File, name string, points []climate.SeriesPoint, withConfidence bool) error {
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", name)
	}

	header := sheet.AddRow()
	for _, col := range seriesHeader {
		header.AddCell().SetString(col)
	}
	if withConfidence {
		header.AddCell().SetString("confidence")
	}

	for _, p := range points {
		row := sheet.AddRow()
		row.AddCell().SetString(p.Date)
		for _, v := range []float64{
			p.Temperature, p.FeelsLike, p.Humidity, p.Pressure,
			p.WindSpeed, p.WindDirection, p.Rainfall, p.CloudCover,
			p.UVIndex, p.Visibility,
		} {
			row.AddCell().SetFloat(v)
		}
		if withConfidence {
			row.AddCell().SetFloat(p.Confidence)
		}
	}
	return nil
}
