// dashboard/period.go
package dashboard

import (
	"encoding/json"
	"fmt"
	"time"
)

const isoDate = "2006-01-02"

// Period выбранный диапазон дат (границы включительно)
type Period struct {
	Start time.Time
	End   time.Time
}

type periodJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// ParsePeriod разбирает границы в формате YYYY-MM-DD
func ParsePeriod(start, end string) (Period, error) {
	s, err := time.Parse(isoDate, start)
	if err != nil {
		return Period{}, fmt.Errorf("неверная начальная дата %q: %w", start, err)
	}
	e, err := time.Parse(isoDate, end)
	if err != nil {
		return Period{}, fmt.Errorf("неверная конечная дата %q: %w", end, err)
	}
	return Period{Start: s, End: e}, nil
}

func (p Period) MarshalJSON() ([]byte, error) {
	return json.Marshal(periodJSON{Start: p.Start.Format(isoDate), End: p.End.Format(isoDate)})
}

func (p *Period) UnmarshalJSON(data []byte) error {
	var raw periodJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("неверный формат периода: %w", err)
	}
	parsed, err := ParsePeriod(raw.Start, raw.End)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
