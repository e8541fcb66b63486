package rowset

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/montanaflynn/stats"
)

// EmissionsColumn is the per-line-item emissions column of flattened envelopes.
const EmissionsColumn = "tco2"

// Summary aggregates the numeric cells of one column.
type Summary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Max    float64 `json:"max"`
}

// Summarize computes count/sum/mean/max over the numeric values of column.
// Non-numeric, empty and non-finite cells are skipped. ok is false when
// nothing numeric was found or an aggregate overflows.
func Summarize(rows RowSet, column string) (Summary, bool) {
	var data stats.Float64Data
	for _, row := range rows {
		v, found := row.Get(column)
		if !found {
			continue
		}
		if f, isNum := toFloat(v); isNum {
			data = append(data, f)
		}
	}
	if len(data) == 0 {
		return Summary{Column: column}, false
	}

	sum, _ := stats.Sum(data)
	mean, _ := stats.Mean(data)
	maxVal, _ := stats.Max(data)
	if !finite(sum) || !finite(mean) || !finite(maxVal) {
		return Summary{Column: column}, false
	}
	return Summary{
		Column: column,
		Count:  len(data),
		Sum:    sum,
		Mean:   mean,
		Max:    maxVal,
	}, true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func toFloat(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil && finite(f)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil && finite(f)
	default:
		return 0, false
	}
}
