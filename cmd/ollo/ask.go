package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ollo-ai/ollo/pkg/config"
	"github.com/ollo-ai/ollo/pkg/query"
)

var presetShort = map[string]string{
	"ask":  "Ask a question (normal preset)",
	"fast": "Ask a quick question (low temperature, short answer)",
	"code": "Ask a code question (low temperature, larger token budget)",
}

// newAskCmd builds the ask, fast, and code commands; they differ only
// in the preset they select.
func newAskCmd(name string) *cobra.Command {
	var (
		configPath string
		model      string
		noCache    bool
		async      bool
		timeout    time.Duration
	)

	presetName := name
	if name == "ask" {
		presetName = "normal"
	}

	cmd := &cobra.Command{
		Use:   name + " <question>",
		Short: presetShort[name],
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			resolved, err := resolveModel(ctx, cfg, model)
			if err != nil {
				return err
			}

			orch, cleanup, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			opts := query.Options{
				Preset:  cfg.Preset(presetName),
				NoCache: noCache,
				Timeout: timeout,
			}

			var res *query.Result
			if async {
				fmt.Println("query dispatched, waiting...")
				res, err = orch.AskAsync(ctx, args[0], resolved, opts).Wait(ctx)
			} else {
				res, err = orch.Ask(ctx, args[0], resolved, opts)
			}
			if err != nil {
				return err
			}

			fmt.Println(res.Response.Response)
			if res.Cached {
				fmt.Printf("\n[%s, cached, %s]\n", res.Response.Model, res.Elapsed.Round(time.Millisecond))
			} else {
				fmt.Printf("\n[%s, %s]\n", res.Response.Model, res.Elapsed.Round(time.Millisecond))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ollo.yaml", "path to config file")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model to use (default: config, then largest installed)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().BoolVar(&async, "async", false, "dispatch the request in the background and wait")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout override")
	return cmd
}
