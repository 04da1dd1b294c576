// chart/types.go
package chart

import (
	"time"
)

// Geometry способ отрисовки ряда
type Geometry string

const (
	GeometryArea   Geometry = "area"
	GeometryColumn Geometry = "column"
	GeometryLine   Geometry = "line"
)

// Значения переключателя типа графика в интерфейсе
const (
	StyleArea   = "Área"
	StyleColumn = "Coluna"
	StyleLine   = "Linha"
)

// Styles варианты переключателя в порядке отображения
var Styles = []string{StyleArea, StyleColumn, StyleLine}

// Общие подписи всех графиков
const (
	XLabel     = "Ano"
	YLabel     = ""
	TickFormat = "2006"
	Caption    = "Dados: Banco Mundial | Elaboração: Análise Macro"
)

// GeometryForStyle сопоставляет выбранный стиль с геометрией.
// Неизвестный стиль даёт false: график строится без слоя данных.
func GeometryForStyle(style string) (Geometry, bool) {
	switch style {
	case StyleArea:
		return GeometryArea, true
	case StyleColumn:
		return GeometryColumn, true
	case StyleLine:
		return GeometryLine, true
	}
	return "", false
}

// Point точка временного ряда
type Point struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Layer слой данных графика
type Layer struct {
	Geometry Geometry `json:"geometry"`
	Points   []Point  `json:"points"`
}

// Chart описание графика, независимое от способа отрисовки
type Chart struct {
	Title      string    `json:"title"`
	XLabel     string    `json:"xLabel"`
	YLabel     string    `json:"yLabel"`
	TickFormat string    `json:"tickFormat"`
	Caption    string    `json:"caption"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Layers     []Layer   `json:"layers"`
}

// HasData true, если у графика есть хотя бы одна точка
func (c *Chart) HasData() bool {
	for _, layer := range c.Layers {
		if len(layer.Points) > 0 {
			return true
		}
	}
	return false
}
