// chart/plotters.go
package chart

import (
	"image/color"
	"math"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Ширина столбца по умолчанию (если точка одна) — доля года
const defaultColumnSpan = 0.8 * 365 * 24 * float64(time.Hour/time.Second)

// columns рисует столбцы от нуля до значения, центрированные по дате
type columns struct {
	xys   plotter.XYs
	width float64
	color color.Color
}

func newColumns(xys plotter.XYs, clr color.Color) *columns {
	width := defaultColumnSpan
	for i := 1; i < len(xys); i++ {
		if gap := (xys[i].X - xys[i-1].X) * 0.8; gap > 0 && gap < width {
			width = gap
		}
	}
	return &columns{xys: xys, width: width, color: clr}
}

func (c *columns) Plot(cv draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&cv)
	for _, p := range c.xys {
		x0 := trX(p.X - c.width/2)
		x1 := trX(p.X + c.width/2)
		y0 := trY(0)
		y1 := trY(p.Y)
		pts := []vg.Point{{X: x0, Y: y0}, {X: x1, Y: y0}, {X: x1, Y: y1}, {X: x0, Y: y1}}
		cv.FillPolygon(c.color, cv.ClipPolygonXY(pts))
	}
}

func (c *columns) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, xmax, ymin, ymax = valueRange(c.xys)
	return xmin - c.width/2, xmax + c.width/2, ymin, ymax
}

// area заливает область между рядом и нулём
type area struct {
	xys  plotter.XYs
	fill color.Color
	line draw.LineStyle
}

func newArea(xys plotter.XYs, clr color.Color) *area {
	line := plotter.DefaultLineStyle
	line.Color = clr
	return &area{xys: xys, fill: withAlpha(clr, 0x99), line: line}
}

func (a *area) Plot(cv draw.Canvas, plt *plot.Plot) {
	if len(a.xys) == 0 {
		return
	}
	trX, trY := plt.Transforms(&cv)

	outline := make([]vg.Point, 0, len(a.xys))
	for _, p := range a.xys {
		outline = append(outline, vg.Point{X: trX(p.X), Y: trY(p.Y)})
	}

	poly := make([]vg.Point, 0, len(outline)+2)
	poly = append(poly, vg.Point{X: outline[0].X, Y: trY(0)})
	poly = append(poly, outline...)
	poly = append(poly, vg.Point{X: outline[len(outline)-1].X, Y: trY(0)})

	cv.FillPolygon(a.fill, cv.ClipPolygonXY(poly))
	cv.StrokeLines(a.line, cv.ClipLinesXY(outline)...)
}

func (a *area) DataRange() (xmin, xmax, ymin, ymax float64) {
	return valueRange(a.xys)
}

// valueRange диапазон данных с обязательным включением нуля
func valueRange(xys plotter.XYs) (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), 0
	xmax, ymax = math.Inf(-1), 0
	for _, p := range xys {
		xmin = math.Min(xmin, p.X)
		xmax = math.Max(xmax, p.X)
		ymin = math.Min(ymin, p.Y)
		ymax = math.Max(ymax, p.Y)
	}
	return xmin, xmax, ymin, ymax
}

func withAlpha(clr color.Color, alpha uint8) color.Color {
	r, g, b, _ := clr.RGBA()
	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: alpha}
}
