package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ollo-ai/ollo/pkg/config"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			orch, cleanup, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			stats := orch.CacheStats()
			fmt.Printf("Total:    %d\nValid:    %d\nExpired:  %d\nAccesses: %d\nHits:     %d\nMisses:   %d\n",
				stats.Total, stats.Valid, stats.Expired, stats.TotalAccesses, stats.Hits, stats.Misses)
			return nil
		},
	}

	var expiredOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			orch, cleanup, err := buildOrchestrator(cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			if expiredOnly {
				orch.SweepCache()
				fmt.Println("Expired cache entries cleared.")
			} else {
				orch.ClearCache()
				fmt.Println("All cache entries cleared.")
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&expiredOnly, "expired", false, "only clear expired entries")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "ollo.yaml", "path to config file")
	cmd.AddCommand(statsCmd, clearCmd)
	return cmd
}
