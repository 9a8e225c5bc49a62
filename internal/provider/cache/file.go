package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"eodseries/internal/provider"
)

// File persists datasets as JSON files under Dir so repeated runs within TTL
// do not hit the provider. A zero TTL means 24h.
type File struct {
	P   provider.Provider
	Dir string
	TTL time.Duration
	Log *zap.Logger
}

func (fc *File) Name() string { return fc.P.Name() }

func (fc *File) Fetch(ctx context.Context, req provider.Request) (provider.Dataset, error) {
	ttl := fc.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	log := fc.Log
	if log == nil {
		log = zap.NewNop()
	}

	loc := fc.location(req)
	if prev, err := readDataset(loc); err == nil {
		if prev.FetchedAt.After(time.Now().Add(-ttl)) {
			log.Debug("returning file cached dataset", zap.String("code", req.Code), zap.String("path", loc))
			return prev, nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		log.Warn("ignoring unreadable cache file", zap.String("path", loc), zap.Error(err))
	}

	ds, err := fc.P.Fetch(ctx, req)
	if err != nil {
		return provider.Dataset{}, err
	}
	if err := fc.write(loc, ds); err != nil {
		// the fetched data is still good
		log.Warn("writing cache file", zap.String("path", loc), zap.Error(err))
	}
	return ds, nil
}

func (fc *File) write(loc string, ds provider.Dataset) error {
	if err := os.MkdirAll(fc.Dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(fc.Dir, ".dataset-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if err := json.NewEncoder(tmp).Encode(ds); err != nil {
		tmp.Close()
		return fmt.Errorf("encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), loc)
}

func readDataset(loc string) (provider.Dataset, error) {
	b, err := os.ReadFile(loc)
	if err != nil {
		return provider.Dataset{}, err
	}
	var ds provider.Dataset
	if err := json.Unmarshal(b, &ds); err != nil {
		return provider.Dataset{}, fmt.Errorf("decode %s: %w", loc, err)
	}
	return ds, nil
}

// location maps a request key to a file name, e.g. fse_sap_x_2018-01-01_2020-05-01.json.
func (fc *File) location(req provider.Request) string {
	name := strings.ToLower(req.Key())
	name = strings.NewReplacer("/", "_", "|", "_", string(os.PathSeparator), "_").Replace(name)
	return filepath.Join(fc.Dir, name+".json")
}
