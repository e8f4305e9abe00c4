package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "eightball",
		Short:   "Eightball — caching magic 8 ball answer service",
		Version: version,
	}

	root.AddCommand(
		newServeCmd(),
		newAskCmd(),
		newCacheCmd(),
		newHistoryCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
