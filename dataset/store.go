// dataset/store.go
package dataset

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/LilVoxy/macro_copa/processor"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Store неизменяемая таблица наблюдений, загружаемая один раз при старте.
// После построения не модифицируется, поэтому безопасна для чтения из любого числа сессий.
type Store struct {
	fileName string
	frame    dataframe.DataFrame
	rows     []Observation

	// Индекс строк по стране (позиции в rows)
	byCountry map[string][]int

	indicators []string
	countries  []string
	minDate    time.Time
	maxDate    time.Time

	// Исходный файл, сжатый snappy
	raw     []byte
	dropped int
}

// Load читает CSV-файл и строит хранилище
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла данных: %w", err)
	}
	return FromCSV(filepath.Base(path), data)
}

// FromCSV строит хранилище из содержимого CSV-файла
func FromCSV(name string, data []byte) (*Store, error) {
	df := dataframe.ReadCSV(bytes.NewReader(data), dataframe.WithTypes(map[string]series.Type{
		ColumnCountry:   series.String,
		ColumnIndicator: series.String,
		ColumnDate:      series.String,
		ColumnValue:     series.Float,
	}))
	if df.Err != nil {
		return nil, fmt.Errorf("ошибка разбора CSV: %w", df.Err)
	}

	if err := checkColumns(df.Names()); err != nil {
		return nil, err
	}

	countries := df.Col(ColumnCountry).Records()
	indicators := df.Col(ColumnIndicator).Records()
	dates := df.Col(ColumnDate).Records()
	values := df.Col(ColumnValue).Float()

	rows := make([]Observation, 0, df.Nrow())
	for i := 0; i < df.Nrow(); i++ {
		date, err := ParseDate(dates[i])
		if err != nil {
			// +2: заголовок и нумерация строк с единицы
			return nil, fmt.Errorf("строка %d: %w", i+2, err)
		}
		rows = append(rows, Observation{
			Country:   countries[i],
			Indicator: indicators[i],
			Date:      date,
			Value:     values[i],
		})
	}

	return build(name, rows, data)
}

// FromObservations строит хранилище из уже разобранных строк (например, из MySQL).
// Содержимое для скачивания формируется как CSV той же таблицы.
func FromObservations(name string, rows []Observation) (*Store, error) {
	var buf bytes.Buffer
	if err := newFrame(rows).WriteCSV(&buf); err != nil {
		return nil, fmt.Errorf("ошибка формирования CSV: %w", err)
	}
	return build(name, rows, buf.Bytes())
}

func checkColumns(names []string) error {
	present := make(map[string]bool, len(names))
	for _, name := range names {
		present[name] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

func build(name string, all []Observation, raw []byte) (*Store, error) {
	s := &Store{
		fileName:  name,
		byCountry: make(map[string][]int),
		raw:       processor.CompressPayload(raw),
	}

	seen := make(map[observationKey]struct{}, len(all))
	indicatorSet := make(map[string]struct{})

	for _, row := range all {
		if math.IsNaN(row.Value) {
			s.dropped++
			continue
		}
		row.Date = truncateDay(row.Date)

		k := row.key()
		if _, ok := seen[k]; ok {
			return nil, fmt.Errorf("%w: %s / %s / %s", ErrDuplicateKey, k.country, k.indicator, k.date)
		}
		seen[k] = struct{}{}

		idx := len(s.rows)
		s.rows = append(s.rows, row)

		if _, ok := s.byCountry[row.Country]; !ok {
			s.countries = append(s.countries, row.Country)
		}
		s.byCountry[row.Country] = append(s.byCountry[row.Country], idx)

		if _, ok := indicatorSet[row.Indicator]; !ok {
			indicatorSet[row.Indicator] = struct{}{}
			s.indicators = append(s.indicators, row.Indicator)
		}

		if s.minDate.IsZero() || row.Date.Before(s.minDate) {
			s.minDate = row.Date
		}
		if row.Date.After(s.maxDate) {
			s.maxDate = row.Date
		}
	}

	if len(s.rows) == 0 {
		return nil, ErrEmptyDataset
	}

	sort.Strings(s.countries)
	sort.Strings(s.indicators)
	s.frame = newFrame(s.rows)

	return s, nil
}

func newFrame(rows []Observation) dataframe.DataFrame {
	countries := make([]string, len(rows))
	indicators := make([]string, len(rows))
	dates := make([]string, len(rows))
	values := make([]float64, len(rows))
	for i, row := range rows {
		countries[i] = row.Country
		indicators[i] = row.Indicator
		dates[i] = row.Date.Format(isoDate)
		values[i] = row.Value
	}
	return dataframe.New(
		series.New(countries, series.String, ColumnCountry),
		series.New(indicators, series.String, ColumnIndicator),
		series.New(dates, series.String, ColumnDate),
		series.New(values, series.Float, ColumnValue),
	)
}

// FileName имя исходного файла (используется при скачивании)
func (s *Store) FileName() string {
	return s.fileName
}

// Len количество загруженных строк
func (s *Store) Len() int {
	return len(s.rows)
}

// Dropped количество строк без значения, отброшенных при загрузке
func (s *Store) Dropped() int {
	return s.dropped
}

// Rows возвращает копию всех строк в порядке исходного файла
func (s *Store) Rows() []Observation {
	out := make([]Observation, len(s.rows))
	copy(out, s.rows)
	return out
}

// Indicators отсортированный список показателей
func (s *Store) Indicators() []string {
	return append([]string(nil), s.indicators...)
}

// Countries отсортированный список стран
func (s *Store) Countries() []string {
	return append([]string(nil), s.countries...)
}

// DateBounds минимальная и максимальная даты в таблице
func (s *Store) DateBounds() (time.Time, time.Time) {
	return s.minDate, s.maxDate
}

func (s *Store) HasCountry(country string) bool {
	_, ok := s.byCountry[country]
	return ok
}

func (s *Store) HasIndicator(indicator string) bool {
	i := sort.SearchStrings(s.indicators, indicator)
	return i < len(s.indicators) && s.indicators[i] == indicator
}

// Raw возвращает исходный файл без изменений
func (s *Store) Raw() ([]byte, error) {
	return processor.DecompressPayload(s.raw)
}
