// dashboard/app.go
package dashboard

import (
	"errors"

	"github.com/LilVoxy/macro_copa/chart"
	"github.com/LilVoxy/macro_copa/dataset"
	"github.com/LilVoxy/macro_copa/layout"
)

var (
	ErrUnknownCountry   = errors.New("страна отсутствует в данных")
	ErrUnknownIndicator = errors.New("показатель отсутствует в данных")
	ErrUnknownControl   = errors.New("неизвестный элемент управления")
)

// App общие для всех сессий неизменяемые объекты
type App struct {
	Store    *dataset.Store
	Layout   *layout.Layout
	Renderer *chart.Renderer
}

// panel связывает вход страны с выходами одной колонки
type panel struct {
	countryInput string
	summaryCalc  string
	summaryOut   string
	plotOut      string
}

var panels = []panel{
	{countryInput: layout.Country1ID, summaryCalc: "tabela_pais1", summaryOut: layout.Summary1ID, plotOut: layout.Plot1ID},
	{countryInput: layout.Country2ID, summaryCalc: "tabela_pais2", summaryOut: layout.Summary2ID, plotOut: layout.Plot2ID},
}
