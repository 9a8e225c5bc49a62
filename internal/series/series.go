package series

import (
	"sort"
	"time"
)

// Observation is a single dated value of a series.
type Observation struct {
	Date  time.Time `json:"date"`
	Value float64   `json:"value"`
}

// Series is an ordered run of observations for one instrument, ascending by date.
type Series []Observation

// LastPerYear collapses s to one observation per calendar year, keeping the
// observation with the latest date in each year. The result is ascending by year.
// For equal dates, later input wins.
func LastPerYear(s Series) Series {
	if len(s) == 0 {
		return Series{}
	}

	latest := make(map[int]Observation, 16)
	for _, o := range s {
		y := o.Date.Year()
		if cur, ok := latest[y]; ok && o.Date.Before(cur.Date) {
			continue
		}
		latest[y] = o
	}

	out := make(Series, 0, len(latest))
	for _, o := range latest {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
