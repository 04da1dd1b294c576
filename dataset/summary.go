// dataset/summary.go
package dataset

import (
	"sort"

	"github.com/shopspring/decimal"
)

// SummaryRow последнее значение показателя для страны
type SummaryRow struct {
	Year      int             `json:"ano"`
	Indicator string          `json:"indicador"`
	Value     decimal.Decimal `json:"valor"`
}

// Summary для каждого показателя страны берёт самую позднюю по дате строку.
// Строки идут в том порядке, в котором выбранные наблюдения встречаются в таблице.
func (s *Store) Summary(country string) []SummaryRow {
	latest := make(map[string]int)
	for _, idx := range s.byCountry[country] {
		row := s.rows[idx]
		prev, ok := latest[row.Indicator]
		// При равных датах побеждает более поздняя строка файла
		if !ok || !row.Date.Before(s.rows[prev].Date) {
			latest[row.Indicator] = idx
		}
	}

	positions := make([]int, 0, len(latest))
	for _, idx := range latest {
		positions = append(positions, idx)
	}
	sort.Ints(positions)

	out := make([]SummaryRow, 0, len(positions))
	for _, idx := range positions {
		row := s.rows[idx]
		out = append(out, SummaryRow{
			Year:      row.Date.Year(),
			Indicator: row.Indicator,
			Value:     decimal.NewFromFloat(row.Value).Round(2),
		})
	}
	return out
}
