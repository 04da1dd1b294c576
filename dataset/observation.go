// dataset/observation.go
package dataset

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Названия колонок исходного файла
const (
	ColumnCountry   = "pais"
	ColumnIndicator = "variavel"
	ColumnDate      = "data"
	ColumnValue     = "valor"
)

// Формат, в котором даты хранятся в нормализованной таблице
const isoDate = "2006-01-02"

var requiredColumns = []string{ColumnCountry, ColumnIndicator, ColumnDate, ColumnValue}

var (
	ErrMissingColumn = errors.New("в файле отсутствует обязательная колонка")
	ErrDuplicateKey  = errors.New("повторяющаяся запись (страна, показатель, дата)")
	ErrEmptyDataset  = errors.New("набор данных пуст")
)

// Observation одна строка таблицы наблюдений
type Observation struct {
	Country   string    `json:"pais"`
	Indicator string    `json:"variavel"`
	Date      time.Time `json:"data"`
	Value     float64   `json:"valor"`
}

// Query фильтр для временного ряда одной страны
type Query struct {
	Indicator string
	Country   string
	Start     time.Time
	End       time.Time
}

type observationKey struct {
	country   string
	indicator string
	date      string
}

func (o Observation) key() observationKey {
	return observationKey{country: o.Country, indicator: o.Indicator, date: o.Date.Format(isoDate)}
}

// Форматы дат, которые встречаются в выгрузках
var dateLayouts = []string{
	isoDate,
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006/01/02",
	"2006",
}

// ParseDate разбирает значение колонки data
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return truncateDay(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("не удалось разобрать дату %q", value)
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
