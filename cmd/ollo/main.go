package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:     "ollo",
		Short:   "Ollo — cached Ollama client for the terminal",
		Version: version,
	}

	root.AddCommand(
		newAskCmd("ask"),
		newAskCmd("fast"),
		newAskCmd("code"),
		newBatchCmd(),
		newCacheCmd(),
		newStatusCmd(),
		newHistoryCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
