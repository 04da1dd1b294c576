package dashboard

import (
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/config"
	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/layout"
	"github.com/LilVoxy/macro_copa/reactive"
	"github.com/LilVoxy/macro_copa/utils"
)

func newTestApp(t *testing.T, renderer *chart.Renderer) *App {
	t.Helper()
	store, err := dataset.Load(filepath.Join("..", "dataset", "testdata", "dados.csv"))
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	lay := layout.Build(store, config.Default().Defaults, utils.NewWriterLogger(io.Discard, false))
	return &App{Store: store, Layout: lay, Renderer: renderer}
}

func newTestSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession("test", newTestApp(t, nil))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return s
}

func ids(updates []reactive.Update) []string {
	out := make([]string, 0, len(updates))
	for _, u := range updates {
		out = append(out, u.ID)
	}
	return out
}

func byID(updates []reactive.Update) map[string]reactive.Update {
	out := make(map[string]reactive.Update, len(updates))
	for _, u := range updates {
		out[u.ID] = u
	}
	return out
}

func mustSet(t *testing.T, s *Session, id string, value any) []reactive.Update {
	t.Helper()
	raw, err := json.Marshal(value)
	if err != nil {
		t.Fatal(err)
	}
	updates, err := s.SetInput(id, raw)
	if err != nil {
		t.Fatalf("SetInput(%s): %v", id, err)
	}
	return updates
}

func TestInitialRendersAllOutputs(t *testing.T) {
	s := newTestSession(t)
	updates := s.Initial()

	want := []string{layout.Summary1ID, layout.Plot1ID, layout.Summary2ID, layout.Plot2ID}
	if got := ids(updates); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for _, u := range updates {
		if u.Err != nil {
			t.Fatalf("%s: unexpected error %v", u.ID, u.Err)
		}
	}

	out := byID(updates)
	table := out[layout.Summary1ID].Value.(*Table)
	if table.Country != "Brazil" || len(table.Rows) != 2 {
		t.Fatalf("unexpected summary table %+v", table)
	}
	if table.Rows[0][2] != "-3.28" || table.Rows[1][2] != "8.30" {
		t.Fatalf("values not rounded to 2 decimals: %v", table.Rows)
	}

	plot := out[layout.Plot2ID].Value.(*ChartOutput)
	if plot.Chart.Title != "Argentina - PIB (%, cresc. anual)" {
		t.Fatalf("unexpected title %q", plot.Chart.Title)
	}
	if plot.Chart.Layers[0].Geometry != chart.GeometryLine {
		t.Fatalf("expected line geometry by default, got %s", plot.Chart.Layers[0].Geometry)
	}
}

func TestPeriodChangeOnlyUpdatesCharts(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	updates := mustSet(t, s, layout.PeriodID, map[string]string{"start": "2010-01-01", "end": "2020-12-31"})

	if got := ids(updates); !reflect.DeepEqual(got, []string{layout.Plot1ID, layout.Plot2ID}) {
		t.Fatalf("expected only charts to update, got %v", got)
	}
	if s.Runs("tabela_pais1") != 1 || s.Runs("tabela_pais2") != 1 {
		t.Fatalf("summary calcs should not rerun on period change")
	}

	plot := byID(updates)[layout.Plot1ID].Value.(*ChartOutput)
	points := plot.Chart.Layers[0].Points
	if len(points) != 2 {
		t.Fatalf("expected 2 points in period, got %d", len(points))
	}
	for _, p := range points {
		if p.Date.Year() < 2010 || p.Date.Year() > 2020 {
			t.Fatalf("point outside period: %s", p.Date)
		}
	}
}

func TestIndicatorChangeUpdatesTitles(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	updates := mustSet(t, s, layout.IndicatorID, "Inflação (%)")
	if got := ids(updates); !reflect.DeepEqual(got, []string{layout.Plot1ID, layout.Plot2ID}) {
		t.Fatalf("expected only charts to update, got %v", got)
	}

	out := byID(updates)
	if title := out[layout.Plot1ID].Value.(*ChartOutput).Chart.Title; title != "Brazil - Inflação (%)" {
		t.Fatalf("unexpected title %q", title)
	}
	if title := out[layout.Plot2ID].Value.(*ChartOutput).Chart.Title; title != "Argentina - Inflação (%)" {
		t.Fatalf("unexpected title %q", title)
	}
}

func TestCountryChangeUpdatesOwnPanel(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	updates := mustSet(t, s, layout.Country1ID, "Chile")
	if got := ids(updates); !reflect.DeepEqual(got, []string{layout.Summary1ID, layout.Plot1ID}) {
		t.Fatalf("expected panel 1 outputs, got %v", got)
	}
	table := byID(updates)[layout.Summary1ID].Value.(*Table)
	if table.Country != "Chile" || len(table.Rows) != 2 {
		t.Fatalf("unexpected table %+v", table)
	}
}

func TestStyleChange(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	updates := mustSet(t, s, layout.ChartStyleID, chart.StyleColumn)
	for _, u := range updates {
		c := u.Value.(*ChartOutput).Chart
		if len(c.Layers) != 1 || c.Layers[0].Geometry != chart.GeometryColumn {
			t.Fatalf("%s: expected column layer, got %+v", u.ID, c.Layers)
		}
	}

	updates = mustSet(t, s, layout.ChartStyleID, "Pizza")
	if len(updates) != 2 {
		t.Fatalf("expected both charts, got %v", ids(updates))
	}
	for _, u := range updates {
		if u.Err != nil {
			t.Fatalf("unknown style must not be an error: %v", u.Err)
		}
		if c := u.Value.(*ChartOutput).Chart; len(c.Layers) != 0 {
			t.Fatalf("expected no layers for unknown style")
		}
	}
}

func TestSameValueDoesNotRecompute(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	if updates := mustSet(t, s, layout.Country2ID, "Argentina"); len(updates) != 0 {
		t.Fatalf("expected no updates, got %v", ids(updates))
	}
	if updates := mustSet(t, s, layout.PeriodID, map[string]string{"start": "2000-01-01", "end": "2021-01-01"}); len(updates) != 0 {
		t.Fatalf("expected no updates, got %v", ids(updates))
	}
}

func TestUnknownCountrySurfacesError(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	updates := mustSet(t, s, layout.Country2ID, "Atlantis")
	if len(updates) != 2 {
		t.Fatalf("expected panel 2 outputs, got %v", ids(updates))
	}
	for _, u := range updates {
		if !errors.Is(u.Err, ErrUnknownCountry) {
			t.Fatalf("%s: expected ErrUnknownCountry, got %v", u.ID, u.Err)
		}
	}

	// Ошибочная сессия восстанавливается после выбора корректной страны
	updates = mustSet(t, s, layout.Country2ID, "Chile")
	for _, u := range updates {
		if u.Err != nil {
			t.Fatalf("%s: unexpected error %v", u.ID, u.Err)
		}
	}
}

func TestSetInputRejectsBadPayloads(t *testing.T) {
	s := newTestSession(t)
	s.Initial()

	if _, err := s.SetInput("btn_nope", json.RawMessage(`"x"`)); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("expected ErrUnknownControl, got %v", err)
	}
	if _, err := s.SetInput(layout.DownloadID, json.RawMessage(`"x"`)); !errors.Is(err, ErrUnknownControl) {
		t.Fatalf("download is not an input, got %v", err)
	}
	if _, err := s.SetInput(layout.PeriodID, json.RawMessage(`{"start":"ontem","end":"2020-01-01"}`)); err == nil {
		t.Fatalf("expected period parse error")
	}
	if _, err := s.SetInput(layout.Country1ID, json.RawMessage(`42`)); err == nil {
		t.Fatalf("expected type error")
	}
}

func TestRenderedChartsHavePNG(t *testing.T) {
	s, err := NewSession("png", newTestApp(t, chart.NewRenderer(4, 2)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, u := range s.Initial() {
		if plot, ok := u.Value.(*ChartOutput); ok && len(plot.PNG) == 0 {
			t.Fatalf("%s: expected PNG bytes", u.ID)
		}
	}
}
