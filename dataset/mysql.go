// dataset/mysql.go
package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"regexp"
)

var tableNamePattern = regexp.MustCompile(`^[A-Za-z0-9_]+(\.[A-Za-z0-9_]+)?$`)

// LoadMySQL загружает наблюдения из таблицы MySQL с колонками pais, variavel, data, valor.
// Соединение должно быть открыто с parseTime=true.
func LoadMySQL(ctx context.Context, db *sql.DB, table string) (*Store, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("недопустимое имя таблицы: %q", table)
	}

	query := fmt.Sprintf(
		"SELECT %s, %s, %s, %s FROM %s ORDER BY %s, %s, %s",
		ColumnCountry, ColumnIndicator, ColumnDate, ColumnValue, table,
		ColumnDate, ColumnCountry, ColumnIndicator,
	)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка запроса наблюдений: %w", err)
	}
	defer rows.Close()

	var observations []Observation
	for rows.Next() {
		var obs Observation
		var value sql.NullFloat64
		if err := rows.Scan(&obs.Country, &obs.Indicator, &obs.Date, &value); err != nil {
			return nil, fmt.Errorf("ошибка сканирования наблюдения: %w", err)
		}
		obs.Value = math.NaN()
		if value.Valid {
			obs.Value = value.Float64
		}
		observations = append(observations, obs)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка при итерации по наблюдениям: %w", err)
	}

	return FromObservations(table+".csv", observations)
}
