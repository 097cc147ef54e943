package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ollo-ai/ollo/pkg/config"
	"github.com/ollo-ai/ollo/pkg/query"
)

func newBatchCmd() *cobra.Command {
	var (
		configPath string
		model      string
		preset     string
		noCache    bool
		parallel   int
	)

	cmd := &cobra.Command{
		Use:   "batch [question...]",
		Short: "Run several questions concurrently (one per line on stdin if no args)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			questions := args
			if len(questions) == 0 {
				scanner := bufio.NewScanner(os.Stdin)
				for scanner.Scan() {
					if line := scanner.Text(); line != "" {
						questions = append(questions, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}
			if len(questions) == 0 {
				return fmt.Errorf("no questions given")
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

			if parallel <= 0 {
				parallel = cfg.Batch.MaxParallel
			}

			opts := query.Options{Preset: cfg.Preset(preset), NoCache: noCache}
			outcomes := orch.AskConcurrent(ctx, questions, resolved, opts, parallel)

			failed := 0
			for i, out := range outcomes {
				fmt.Printf("=== [%d/%d] %s\n", i+1, len(questions), questions[i])
				if out.Err != nil {
					failed++
					fmt.Printf("error: %v\n\n", out.Err)
					continue
				}
				fmt.Println(out.Result.Response.Response)
				if out.Result.Cached {
					fmt.Printf("[cached, %s]\n\n", out.Result.Elapsed.Round(time.Millisecond))
				} else {
					fmt.Printf("[%s]\n\n", out.Result.Elapsed.Round(time.Millisecond))
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d questions failed", failed, len(questions))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ollo.yaml", "path to config file")
	cmd.Flags().StringVarP(&model, "model", "m", "", "model to use")
	cmd.Flags().StringVar(&preset, "preset", "normal", "sampling preset: fast, normal, or code")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the response cache")
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 0, "max concurrent requests (default from config)")
	return cmd
}
