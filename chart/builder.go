// chart/builder.go
package chart

import (
	"time"

	"github.com/LilVoxy/macro_copa/dataset"
)

// Title заголовок графика страны
func Title(country, indicator string) string {
	return country + " - " + indicator
}

// Build строит описание графика по отфильтрованным строкам
func Build(country, indicator, style string, start, end time.Time, rows []dataset.Observation) *Chart {
	c := &Chart{
		Title:      Title(country, indicator),
		XLabel:     XLabel,
		YLabel:     YLabel,
		TickFormat: TickFormat,
		Caption:    Caption,
		Start:      start,
		End:        end,
		Layers:     []Layer{},
	}

	geometry, ok := GeometryForStyle(style)
	if !ok {
		return c
	}

	points := make([]Point, 0, len(rows))
	for _, row := range rows {
		points = append(points, Point{Date: row.Date, Value: row.Value})
	}
	c.Layers = append(c.Layers, Layer{Geometry: geometry, Points: points})
	return c
}
