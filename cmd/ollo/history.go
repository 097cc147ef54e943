package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ollo-ai/ollo/pkg/config"
	"github.com/ollo-ai/ollo/pkg/history"
)

func newHistoryCmd() *cobra.Command {
	var (
		configPath string
		model      string
		recent     int
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show query history",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			tr, err := history.New(cfg.History.DBPath)
			if err != nil {
				return err
			}
			defer tr.Close()

			ctx := context.Background()

			// Recent-query detail view
			if recent > 0 {
				records, err := tr.Recent(ctx, recent)
				if err != nil {
					return err
				}
				if len(records) == 0 {
					fmt.Println("No queries recorded.")
					return nil
				}
				w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "TIME\tMODEL\tOUTCOME\tCACHED\tLATENCY\tTOKENS")
				for _, r := range records {
					cached := "-"
					if r.Cached {
						cached = "yes"
					}
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%dms\t%d\n",
						r.CreatedAt.Format("2006-01-02T15:04:05"), r.Model, r.Outcome, cached, r.LatencyMs, r.EvalCount)
				}
				return w.Flush()
			}

			// Default: per-model summary
			summaries, err := tr.Summary(ctx, model)
			if err != nil {
				return err
			}
			if len(summaries) == 0 {
				fmt.Println("No queries recorded.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODEL\tQUERIES\tCACHE HITS\tMEAN LATENCY\tTOKENS")
			for _, s := range summaries {
				fmt.Fprintf(w, "%s\t%d\t%d\t%dms\t%d\n",
					s.Model, s.QueryCount, s.CacheHits, s.MeanLatencyMs, s.TotalEval)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ollo.yaml", "path to config file")
	cmd.Flags().StringVar(&model, "model", "", "filter by model")
	cmd.Flags().IntVar(&recent, "recent", 0, "show the N most recent queries")
	return cmd
}
