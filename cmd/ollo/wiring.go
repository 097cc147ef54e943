package main

import (
	"context"
	"fmt"

	"github.com/ollo-ai/ollo/pkg/cache"
	"github.com/ollo-ai/ollo/pkg/client"
	"github.com/ollo-ai/ollo/pkg/config"
	"github.com/ollo-ai/ollo/pkg/history"
	"github.com/ollo-ai/ollo/pkg/query"
)

// buildOrchestrator wires the client, cache, and history tracker from
// configuration. The returned cleanup closes the tracker.
func buildOrchestrator(cfg *config.Config) (*query.Orchestrator, func(), error) {
	cl := client.New(cfg.Endpoint)

	var rc *cache.ResponseCache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			var err error
			rc, err = cache.NewPersistent(cfg.Cache.TTL, cfg.Cache.MaxEntries, cfg.Cache.Dir)
			if err != nil {
				return nil, nil, fmt.Errorf("init cache: %w", err)
			}
		} else {
			rc = cache.New(cfg.Cache.TTL, cfg.Cache.MaxEntries)
		}
	}

	var tr *history.Tracker
	if cfg.History.Enabled {
		var err error
		tr, err = history.New(cfg.History.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("init history: %w", err)
		}
	}

	cleanup := func() {
		if tr != nil {
			_ = tr.Close()
		}
	}
	return query.New(cl, rc, tr), cleanup, nil
}

// resolveModel picks the model to use: the explicit flag, then the
// configured default, then the largest installed model.
func resolveModel(ctx context.Context, cfg *config.Config, flagModel string) (string, error) {
	if flagModel != "" {
		return flagModel, nil
	}
	if cfg.Model != "" {
		return cfg.Model, nil
	}

	model, err := client.New(cfg.Endpoint).BestModel(ctx)
	if err != nil {
		return "", fmt.Errorf("resolve model: %w", err)
	}
	return model, nil
}
