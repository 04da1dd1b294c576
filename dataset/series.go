// dataset/series.go
package dataset

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Series отбирает строки по стране, показателю и периоду (границы включительно),
// упорядоченные по дате
func (s *Store) Series(q Query) ([]Observation, error) {
	filters := []dataframe.F{
		{Colname: ColumnCountry, Comparator: series.Eq, Comparando: q.Country},
		{Colname: ColumnIndicator, Comparator: series.Eq, Comparando: q.Indicator},
		{Colname: ColumnDate, Comparator: series.GreaterEq, Comparando: q.Start.Format(isoDate)},
		{Colname: ColumnDate, Comparator: series.LessEq, Comparando: q.End.Format(isoDate)},
	}

	df := s.frame
	for _, f := range filters {
		df = df.Filter(f)
		if df.Err != nil {
			return nil, fmt.Errorf("ошибка фильтрации по колонке %s: %w", f.Colname, df.Err)
		}
		if df.Nrow() == 0 {
			return []Observation{}, nil
		}
	}

	df = df.Arrange(dataframe.Sort(ColumnDate))
	if df.Err != nil {
		return nil, fmt.Errorf("ошибка сортировки: %w", df.Err)
	}

	return frameObservations(df)
}

func frameObservations(df dataframe.DataFrame) ([]Observation, error) {
	countries := df.Col(ColumnCountry).Records()
	indicators := df.Col(ColumnIndicator).Records()
	dates := df.Col(ColumnDate).Records()
	values := df.Col(ColumnValue).Float()

	out := make([]Observation, 0, df.Nrow())
	for i := range countries {
		date, err := ParseDate(dates[i])
		if err != nil {
			return nil, err
		}
		out = append(out, Observation{
			Country:   countries[i],
			Indicator: indicators[i],
			Date:      date,
			Value:     values[i],
		})
	}
	return out, nil
}
