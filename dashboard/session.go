// dashboard/session.go
package dashboard

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/layout"
	"github.com/LilVoxy/macro_copa/reactive"
)

// ChartOutput описание графика и его изображение
type ChartOutput struct {
	Chart *chart.Chart
	PNG   []byte
}

// Session реактивный граф одного пользователя.
// Все методы вызываются из одной горутины сессии.
type Session struct {
	ID    string
	app   *App
	graph *reactive.Graph
}

// NewSession создаёт сессию со входами, заполненными значениями по умолчанию
func NewSession(id string, app *App) (*Session, error) {
	s := &Session{ID: id, app: app, graph: reactive.New()}

	for _, c := range app.Layout.Controls() {
		switch c.Kind {
		case layout.KindSelect, layout.KindRadio:
			s.graph.Input(c.ID, c.Selected)
		case layout.KindDateRange:
			period, err := ParsePeriod(c.Start, c.End)
			if err != nil {
				return nil, fmt.Errorf("вход %s: %w", c.ID, err)
			}
			s.graph.Input(c.ID, period)
		}
	}

	for _, p := range panels {
		s.bind(p)
	}
	return s, nil
}

func (s *Session) bind(p panel) {
	s.graph.Calc(p.summaryCalc, func(ctx *reactive.Context) (any, error) {
		country, err := reactive.InputAs[string](ctx, p.countryInput)
		if err != nil {
			return nil, err
		}
		if !s.app.Store.HasCountry(country) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
		}
		return buildTable(country, s.app.Store.Summary(country)), nil
	})

	s.graph.Output(p.summaryOut, func(ctx *reactive.Context) (any, error) {
		return reactive.CalcAs[*Table](ctx, p.summaryCalc)
	})

	s.graph.Output(p.plotOut, func(ctx *reactive.Context) (any, error) {
		return s.plot(ctx, p.countryInput)
	})
}

func (s *Session) plot(ctx *reactive.Context, countryInput string) (any, error) {
	// Все входы читаются до проверок, чтобы зависимости были записаны и при ошибке
	indicator, errIndicator := reactive.InputAs[string](ctx, layout.IndicatorID)
	country, errCountry := reactive.InputAs[string](ctx, countryInput)
	style, errStyle := reactive.InputAs[string](ctx, layout.ChartStyleID)
	period, errPeriod := reactive.InputAs[Period](ctx, layout.PeriodID)
	if err := errors.Join(errIndicator, errCountry, errStyle, errPeriod); err != nil {
		return nil, err
	}

	if !s.app.Store.HasCountry(country) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	if !s.app.Store.HasIndicator(indicator) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIndicator, indicator)
	}

	rows, err := s.app.Store.Series(dataset.Query{
		Indicator: indicator,
		Country:   country,
		Start:     period.Start,
		End:       period.End,
	})
	if err != nil {
		return nil, err
	}

	out := &ChartOutput{Chart: chart.Build(country, indicator, style, period.Start, period.End, rows)}
	if s.app.Renderer != nil {
		out.PNG, err = s.app.Renderer.PNG(out.Chart)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Initial вычисляет все выходы при открытии сессии
func (s *Session) Initial() []reactive.Update {
	return s.graph.Flush()
}

// SetInput применяет новое значение входа, пришедшее от клиента в JSON,
// и возвращает пересчитанные выходы
func (s *Session) SetInput(id string, raw json.RawMessage) ([]reactive.Update, error) {
	c, ok := s.app.Layout.Control(id)
	if !ok || c.Kind == layout.KindDownload {
		return nil, fmt.Errorf("%w: %s", ErrUnknownControl, id)
	}

	var value any
	switch c.Kind {
	case layout.KindDateRange:
		var period Period
		if err := json.Unmarshal(raw, &period); err != nil {
			return nil, fmt.Errorf("вход %s: %w", id, err)
		}
		value = period
	default:
		var str string
		if err := json.Unmarshal(raw, &str); err != nil {
			return nil, fmt.Errorf("вход %s: ожидалась строка: %w", id, err)
		}
		value = str
	}

	if err := s.graph.Set(id, value); err != nil {
		return nil, err
	}
	return s.graph.Flush(), nil
}

// Runs сколько раз пересчитывался выход или вычисление
func (s *Session) Runs(id string) int {
	return s.graph.Runs(id)
}
