package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ollo-ai/ollo/pkg/client"
	"github.com/ollo-ai/ollo/pkg/config"
)

func newStatusCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server status and installed models",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			cl := client.New(cfg.Endpoint)
			ctx := context.Background()

			if err := cl.Ping(ctx); err != nil {
				return fmt.Errorf("server %s unreachable: %w", cfg.Endpoint, err)
			}
			fmt.Printf("Server:   %s (up)\n", cfg.Endpoint)

			installed, err := cl.Tags(ctx)
			if err != nil {
				return err
			}
			if len(installed) == 0 {
				fmt.Println("No models installed.")
				return nil
			}

			best, err := cl.BestModel(ctx)
			if err != nil {
				return err
			}
			if cfg.Model != "" {
				fmt.Printf("Default:  %s (configured)\n\n", cfg.Model)
			} else {
				fmt.Printf("Default:  %s (largest installed)\n\n", best)
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tMODIFIED")
			for _, m := range installed {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, humanize.IBytes(uint64(m.Size)), m.ModifiedAt)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "ollo.yaml", "path to config file")
	return cmd
}
