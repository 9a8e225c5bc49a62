package provider

import (
	"context"
	"fmt"
	"time"

	"eodseries/internal/series"
)

// Provider is the boundary to an external historical data service.
// Implementations make one outbound request per Fetch and do not retry.
//
//go:generate mockgen -package=providertest -destination=providertest/mock_provider.go -source=provider.go Provider
type Provider interface {
	Name() string
	Fetch(ctx context.Context, req Request) (Dataset, error)
}

// Row is one dated row of a dataset. A nil value is a provider null.
type Row struct {
	Date   time.Time  `json:"date"`
	Values []*float64 `json:"values"`
}

// Dataset is the date-indexed table returned by a provider.
// Columns excludes the date column; len(Row.Values) == len(Columns).
type Dataset struct {
	Code      string    `json:"code"`
	Columns   []string  `json:"columns"`
	Rows      []Row     `json:"rows"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Column projects one value column into a series, skipping nulls.
// An empty name selects the first value column.
func (d Dataset) Column(name string) (series.Series, error) {
	idx := -1
	if name == "" && len(d.Columns) > 0 {
		idx = 0
	}
	for i, c := range d.Columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%w: column %q not in %s %v", ErrInvalidRequest, name, d.Code, d.Columns)
	}

	out := make(series.Series, 0, len(d.Rows))
	for _, r := range d.Rows {
		if idx >= len(r.Values) || r.Values[idx] == nil {
			continue
		}
		out = append(out, series.Observation{Date: r.Date, Value: *r.Values[idx]})
	}
	return out, nil
}

// FetchSeries fetches req from p and returns the named column as a series.
func FetchSeries(ctx context.Context, p Provider, req Request, column string) (series.Series, error) {
	ds, err := p.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}
	return ds.Column(column)
}
