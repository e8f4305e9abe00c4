package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eightball-ai/eightball/pkg/config"
	"github.com/eightball-ai/eightball/pkg/oracle"
	sqlitestore "github.com/eightball-ai/eightball/pkg/store/sqlite"
)

func openSQLiteStore(configPath string) (*config.Config, *sqlitestore.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Store.Backend != "sqlite" {
		return nil, nil, fmt.Errorf("cache maintenance requires the sqlite backend, have %q", cfg.Store.Backend)
	}
	s, err := sqlitestore.New(cfg.Store.DBPath)
	if err != nil {
		return nil, nil, err
	}
	return cfg, s, nil
}

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the answer cache",
	}

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Show answer cache statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openSQLiteStore(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			stats, err := s.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Entries: %d\nHits:    %d\nMisses:  %d\n", stats.Entries, stats.Hits, stats.Misses)
			return nil
		},
	}

	var listLimit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List cached answers, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openSQLiteStore(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			records, err := s.List(cmd.Context(), listLimit)
			if err != nil {
				return err
			}
			for _, r := range records {
				fmt.Printf("%s  %q -> %q\n", r.UpdatedAt.Format("2006-01-02 15:04:05"), r.Question, r.Answer)
			}
			return nil
		},
	}
	listCmd.Flags().IntVar(&listLimit, "limit", 50, "maximum entries to show")

	var placeholdersOnly bool
	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached answers",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, err := openSQLiteStore(configPath)
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			onlyAnswer := ""
			if placeholdersOnly {
				onlyAnswer = oracle.Noncommittal
			}
			n, err := s.Clear(cmd.Context(), onlyAnswer)
			if err != nil {
				return err
			}
			if placeholdersOnly {
				fmt.Printf("%d placeholder entries cleared.\n", n)
			} else {
				fmt.Printf("%d entries cleared.\n", n)
			}
			return nil
		},
	}
	clearCmd.Flags().BoolVar(&placeholdersOnly, "placeholders", false, "only clear non-committal placeholder answers")

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "eightball.yaml", "path to config file")
	cmd.AddCommand(statsCmd, listCmd, clearCmd)
	return cmd
}
