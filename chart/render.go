// chart/render.go
package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Высота полосы под подпись источника данных
const captionHeight vg.Length = 14

var seriesColor = color.RGBA{R: 0x4F, G: 0x46, B: 0xE5, A: 0xFF}

// Renderer рисует графики в PNG
type Renderer struct {
	Width  vg.Length
	Height vg.Length
	Color  color.Color
}

// NewRenderer создаёт рендерер с размерами в дюймах
func NewRenderer(widthIn, heightIn float64) *Renderer {
	return &Renderer{
		Width:  vg.Length(widthIn) * vg.Inch,
		Height: vg.Length(heightIn) * vg.Inch,
		Color:  seriesColor,
	}
}

// PNG отрисовывает график. График без слоёв получает только оси и заголовок.
func (r *Renderer) PNG(c *Chart) ([]byte, error) {
	p, err := r.plot(c)
	if err != nil {
		return nil, err
	}

	img := vgimg.New(r.Width, r.Height)
	dc := draw.New(img)

	p.Draw(draw.Crop(dc, 0, 0, captionHeight, 0))

	sty := p.X.Label.TextStyle
	sty.XAlign = text.XRight
	sty.YAlign = text.YBottom
	sty.Font.Size = vg.Points(8)
	dc.FillText(sty, vg.Point{X: dc.Max.X - vg.Points(4), Y: dc.Min.Y + vg.Points(3)}, c.Caption)

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("ошибка кодирования PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) plot(c *Chart) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = c.XLabel
	p.Y.Label.Text = c.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: c.TickFormat}
	p.Add(plotter.NewGrid())

	if !c.Start.IsZero() && !c.End.IsZero() && c.Start.Before(c.End) {
		p.X.Min = float64(c.Start.Unix())
		p.X.Max = float64(c.End.Unix())
	}

	for _, layer := range c.Layers {
		if len(layer.Points) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(layer.Points))
		for i, pt := range layer.Points {
			xys[i].X = float64(pt.Date.Unix())
			xys[i].Y = pt.Value
		}

		switch layer.Geometry {
		case GeometryLine:
			line, err := plotter.NewLine(xys)
			if err != nil {
				return nil, fmt.Errorf("ошибка построения линии: %w", err)
			}
			line.Color = r.Color
			line.Width = vg.Points(1.5)
			p.Add(line)
		case GeometryArea:
			p.Add(newArea(xys, r.Color))
		case GeometryColumn:
			p.Add(newColumns(xys, r.Color))
		}
	}

	return p, nil
}
