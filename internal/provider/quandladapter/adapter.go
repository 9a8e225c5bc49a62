package quandladapter

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"eodseries/internal/provider"
	"eodseries/internal/provider/quandl"
)

type Config struct {
	Name string // display name, default: Quandl
	// Order requested from the API. Series are ascending, so this defaults to "asc".
	Order string
}

// DatasetGetter is the part of *quandl.Client the adapter uses.
type DatasetGetter interface {
	GetDatasetData(ctx context.Context, code string, opts quandl.DataOptions, options ...quandl.ClientOption) (*quandl.DatasetData, error)
}

// Adapter exposes the Quandl client as a provider.Provider.
type Adapter struct {
	cfg    Config
	client DatasetGetter
	log    *zap.Logger
}

func New(cfg Config, client DatasetGetter, log *zap.Logger) *Adapter {
	if cfg.Name == "" {
		cfg.Name = "Quandl"
	}
	if cfg.Order == "" {
		cfg.Order = "asc"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Adapter{cfg: cfg, client: client, log: log}
}

func (a *Adapter) Name() string { return a.cfg.Name }

// Fetch performs a single request for req and converts the answer into a dataset.
func (a *Adapter) Fetch(ctx context.Context, req provider.Request) (provider.Dataset, error) {
	if err := req.Validate(); err != nil {
		return provider.Dataset{}, err
	}

	opts := quandl.DataOptions{Order: a.cfg.Order}
	if req.Range != nil {
		opts.StartDate = req.Range.Start
		opts.EndDate = req.Range.End
	}

	a.log.Debug("querying provider", zap.String("provider", a.cfg.Name), zap.String("code", req.Code), zap.String("key", req.Key()))
	data, err := a.client.GetDatasetData(ctx, req.Code, opts)
	if err != nil {
		return provider.Dataset{}, classify(err)
	}

	ds, err := convert(req.Code, data)
	if err != nil {
		return provider.Dataset{}, fmt.Errorf("%s %s: %w", a.cfg.Name, req.Code, err)
	}
	a.log.Info("fetched dataset", zap.String("provider", a.cfg.Name), zap.String("code", req.Code), zap.Int("rows", len(ds.Rows)))
	return ds, nil
}

// classify wraps a client error with the matching provider error class.
func classify(err error) error {
	switch {
	case errors.Is(err, quandl.ErrUnauthorized):
		return fmt.Errorf("%w: %w", provider.ErrAuthentication, err)
	case errors.Is(err, quandl.ErrNotFound):
		return fmt.Errorf("%w: %w", provider.ErrNotFound, err)
	case errors.Is(err, quandl.ErrRateLimited):
		return fmt.Errorf("%w: %w", provider.ErrRateLimited, err)
	case errors.Is(err, quandl.ErrTransport), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w: %w", provider.ErrNetwork, err)
	}
	return err
}

func convert(code string, data *quandl.DatasetData) (provider.Dataset, error) {
	if len(data.ColumnNames) == 0 {
		return provider.Dataset{}, fmt.Errorf("no columns in response")
	}
	ds := provider.Dataset{
		Code:      code,
		Columns:   append([]string(nil), data.ColumnNames[1:]...),
		Rows:      make([]provider.Row, 0, len(data.Data)),
		FetchedAt: time.Now().UTC(),
	}
	for i, raw := range data.Data {
		if len(raw) == 0 {
			continue
		}
		day, ok := raw[0].(string)
		if !ok {
			return provider.Dataset{}, fmt.Errorf("row %d: date is %T", i, raw[0])
		}
		date, err := time.Parse(time.DateOnly, day)
		if err != nil {
			return provider.Dataset{}, fmt.Errorf("row %d: %w", i, err)
		}
		values := make([]*float64, len(ds.Columns))
		for j := range values {
			if j+1 >= len(raw) || raw[j+1] == nil {
				continue
			}
			v, ok := raw[j+1].(float64)
			if !ok {
				return provider.Dataset{}, fmt.Errorf("row %d column %q: unexpected type %T", i, ds.Columns[j], raw[j+1])
			}
			values[j] = &v
		}
		ds.Rows = append(ds.Rows, provider.Row{Date: date, Values: values})
	}
	return ds, nil
}
