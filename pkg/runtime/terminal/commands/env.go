package commands

import (
	"context"
	"net/http"

	"github.com/de-tools/irevolution/pkg/client"
	"github.com/de-tools/irevolution/pkg/config"
	"github.com/de-tools/irevolution/pkg/dashboard"
	"github.com/de-tools/irevolution/pkg/dataset"
	"github.com/de-tools/irevolution/pkg/runtime/terminal/export"
)

// SourceFactory builds the dashboard data source for a configuration
type SourceFactory func(cfg *config.Config) dashboard.Source

// APISource reads the dashboard data from the configured API
func APISource(cfg *config.Config) dashboard.Source {
	return client.New(cfg.API.BaseURL, client.WithTimeout(cfg.API.Timeout))
}

// Env is shared by every command. Config is set by the root command before
// any command runs.
type Env struct {
	Config   *config.Config
	Reporter *export.Reporter
	Source   SourceFactory
	Fetchers dataset.Registry
}

func (e *Env) source() dashboard.Source {
	if e.Source == nil {
		return APISource(e.Config)
	}
	return e.Source(e.Config)
}

func (e *Env) fetchers() dataset.Registry {
	if e.Fetchers == nil {
		return dataset.DefaultRegistry(&http.Client{Timeout: e.Config.API.Timeout})
	}
	return e.Fetchers
}

// waitCounters blocks until the counters finished or ctx is done
func waitCounters(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
