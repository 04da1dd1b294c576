// dashboard/table.go
package dashboard

import (
	"strconv"

	"github.com/LilVoxy/macro_copa/dataset"
)

// Column описание колонки таблицы
type Column struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Type  string `json:"type"`
	Align string `json:"align"`
}

// Table сводная таблица страны
type Table struct {
	Country string     `json:"country"`
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

var summaryColumns = []Column{
	{Key: "data", Label: "Ano", Type: "number", Align: "left"},
	{Key: "variavel", Label: "Indicador", Type: "text", Align: "left"},
	{Key: "valor", Label: "Valor", Type: "number", Align: "right"},
}

// buildTable переводит сводку в строки таблицы, значения с двумя знаками после запятой
func buildTable(country string, rows []dataset.SummaryRow) *Table {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			strconv.Itoa(row.Year),
			row.Indicator,
			row.Value.StringFixed(2),
		})
	}
	return &Table{Country: country, Columns: summaryColumns, Rows: out}
}
