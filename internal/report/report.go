package report

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"eodseries/internal/present"
	"eodseries/internal/provider"
	"eodseries/internal/series"
)

// Spec selects a dataset and the value column to print.
// An empty Column prints every column of the dataset.
type Spec struct {
	Code   string
	Column string
	Range  *provider.DateRange
}

// Report prints the yearly Bitcoin series followed by the equity end-of-day range.
type Report struct {
	Provider  provider.Provider
	Presenter *present.Presenter
	Bitcoin   Spec
	Equity    Spec
	Logger    *zap.Logger
}

// Run fetches and prints both series. The first fetch error stops the run.
func (r *Report) Run(ctx context.Context) error {
	log := r.Logger
	if log == nil {
		log = zap.NewNop()
	}

	btc, err := provider.FetchSeries(ctx, r.Provider, provider.Request{Code: r.Bitcoin.Code, Range: r.Bitcoin.Range}, r.Bitcoin.Column)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", r.Bitcoin.Code, err)
	}
	yearly := series.LastPerYear(btc)
	log.Debug("resampled yearly", zap.String("code", r.Bitcoin.Code), zap.Int("observations", len(btc)), zap.Int("years", len(yearly)))
	if err := r.Presenter.PrintYearly(yearly); err != nil {
		return err
	}

	ds, err := r.Provider.Fetch(ctx, provider.Request{Code: r.Equity.Code, Range: r.Equity.Range})
	if err != nil {
		return fmt.Errorf("fetching %s: %w", r.Equity.Code, err)
	}
	if r.Equity.Column == "" {
		return r.Presenter.PrintTable(ds)
	}
	eod, err := ds.Column(r.Equity.Column)
	if err != nil {
		return err
	}
	return r.Presenter.PrintRange(eod)
}
