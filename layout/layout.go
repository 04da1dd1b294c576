// layout/layout.go
package layout

import (
	"time"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/config"
	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/utils"
)

// Идентификаторы элементов управления
const (
	IndicatorID  = "btn_variavel"
	PeriodID     = "btn_periodo"
	ChartStyleID = "btn_tipo_grafico"
	DownloadID   = "btn_download"
	Country1ID   = "btn_pais1"
	Country2ID   = "btn_pais2"
)

// Идентификаторы выходов
const (
	Summary1ID = "resumo_pais1"
	Summary2ID = "resumo_pais2"
	Plot1ID    = "plt_pais1"
	Plot2ID    = "plt_pais2"
)

// DownloadPath адрес скачивания исходного файла
const DownloadPath = "/download"

const isoDate = "2006-01-02"

type ControlKind string

const (
	KindSelect    ControlKind = "select"
	KindDateRange ControlKind = "date_range"
	KindRadio     ControlKind = "radio"
	KindDownload  ControlKind = "download"
)

type OutputKind string

const (
	OutputTable OutputKind = "table"
	OutputPlot  OutputKind = "plot"
)

// Control элемент управления
type Control struct {
	ID       string      `json:"id"`
	Kind     ControlKind `json:"kind"`
	Label    string      `json:"label"`
	Choices  []string    `json:"choices,omitempty"`
	Selected string      `json:"selected,omitempty"`

	// Только для диапазона дат
	Start     string `json:"start,omitempty"`
	End       string `json:"end,omitempty"`
	Min       string `json:"min,omitempty"`
	Max       string `json:"max,omitempty"`
	Format    string `json:"format,omitempty"`
	Language  string `json:"language,omitempty"`
	Separator string `json:"separator,omitempty"`

	// Только для скачивания
	Href string `json:"href,omitempty"`
}

// Output место вывода таблицы или графика
type Output struct {
	ID   string     `json:"id"`
	Kind OutputKind `json:"kind"`
}

// Panel колонка с выбором страны, таблицей и графиком
type Panel struct {
	Heading string  `json:"heading"`
	Country Control `json:"country"`
	Summary Output  `json:"summary"`
	Plot    Output  `json:"plot"`
}

// Credit строка с указанием источника, URL необязателен
type Credit struct {
	Label  string `json:"label"`
	Source string `json:"source"`
	URL    string `json:"url,omitempty"`
}

// Layout декларативное описание страницы
type Layout struct {
	Title    string    `json:"title"`
	LogoURL  string    `json:"logoUrl"`
	Headline string    `json:"headline"`
	Intro    string    `json:"intro"`
	Credits  []Credit  `json:"credits"`
	Sidebar  []Control `json:"sidebar"`
	Panels   []Panel   `json:"panels"`
}

// Build собирает описание страницы по данным и значениям по умолчанию.
// Значение по умолчанию, отсутствующее в данных, заменяется первым доступным вариантом.
func Build(store *dataset.Store, defaults config.Defaults, logger *utils.Logger) *Layout {
	minDate, maxDate := store.DateBounds()
	indicators := store.Indicators()
	countries := store.Countries()

	start := clampDate(defaults.StartDate, minDate, maxDate)

	return &Layout{
		Title:    "⚽ Macro Copa",
		LogoURL:  "https://aluno.analisemacro.com.br/wp-content/uploads/dlm_uploads/2023/05/logo_am_45.png",
		Headline: "Entra em campo a seleção de dados macroeconômicos! ⚽",
		Intro:    "Defina os times de países e indicadores, explore o jogo de visualizações e marque gol na análise de dados!",
		Credits: []Credit{
			{Label: "Dados", Source: "Banco Mundial"},
			{Label: "Elaboração", Source: "Análise Macro", URL: "https://analisemacro.com.br/"},
		},
		Sidebar: []Control{
			{
				ID:       IndicatorID,
				Kind:     KindSelect,
				Label:    "Selecione uma variável:",
				Choices:  indicators,
				Selected: pick(IndicatorID, defaults.Indicator, indicators, logger),
			},
			{
				ID:        PeriodID,
				Kind:      KindDateRange,
				Label:     "Filtre os anos:",
				Start:     start.Format(isoDate),
				End:       maxDate.Format(isoDate),
				Min:       minDate.Format(isoDate),
				Max:       maxDate.Format(isoDate),
				Format:    "yyyy",
				Language:  "pt-BR",
				Separator: "-",
			},
			{
				ID:       ChartStyleID,
				Kind:     KindRadio,
				Label:    "Selecione o tipo do gráfico:",
				Choices:  chart.Styles,
				Selected: pick(ChartStyleID, defaults.ChartStyle, chart.Styles, logger),
			},
			{
				ID:    DownloadID,
				Kind:  KindDownload,
				Label: "Download CSV",
				Href:  DownloadPath,
			},
		},
		Panels: []Panel{
			{
				Heading: "Selecione o 1º país:",
				Country: Control{
					ID:       Country1ID,
					Kind:     KindSelect,
					Choices:  countries,
					Selected: pick(Country1ID, defaults.Country1, countries, logger),
				},
				Summary: Output{ID: Summary1ID, Kind: OutputTable},
				Plot:    Output{ID: Plot1ID, Kind: OutputPlot},
			},
			{
				Heading: "Selecione o 2º país:",
				Country: Control{
					ID:       Country2ID,
					Kind:     KindSelect,
					Choices:  countries,
					Selected: pick(Country2ID, defaults.Country2, countries, logger),
				},
				Summary: Output{ID: Summary2ID, Kind: OutputTable},
				Plot:    Output{ID: Plot2ID, Kind: OutputPlot},
			},
		},
	}
}

// Control ищет элемент управления по идентификатору
func (l *Layout) Control(id string) (Control, bool) {
	for _, c := range l.Controls() {
		if c.ID == id {
			return c, true
		}
	}
	return Control{}, false
}

// Controls все элементы управления страницы
func (l *Layout) Controls() []Control {
	controls := append([]Control(nil), l.Sidebar...)
	for _, p := range l.Panels {
		controls = append(controls, p.Country)
	}
	return controls
}

func pick(id, wanted string, choices []string, logger *utils.Logger) string {
	for _, c := range choices {
		if c == wanted {
			return wanted
		}
	}
	if len(choices) == 0 {
		return ""
	}
	logger.Warn("⚠️ Значение по умолчанию %q для %s отсутствует в данных, используется %q", wanted, id, choices[0])
	return choices[0]
}

func clampDate(value string, min, max time.Time) time.Time {
	t, err := time.Parse(isoDate, value)
	if err != nil || t.Before(min) {
		return min
	}
	if t.After(max) {
		return max
	}
	return t
}
