package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eightball-ai/eightball/pkg/config"
	"github.com/eightball-ai/eightball/pkg/history"
	"github.com/eightball-ai/eightball/pkg/models"
)

func newHistoryCmd() *cobra.Command {
	var configPath string
	var limit int
	var since time.Duration
	var onlyHits bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently asked questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			h, err := history.New(cfg.History)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer func() { _ = h.Close() }()

			opts := models.HistoryQueryOpts{Limit: limit, OnlyHits: onlyHits}
			if since > 0 {
				opts.Since = time.Now().Add(-since)
			}

			entries, err := h.Query(cmd.Context(), opts)
			if err != nil {
				return err
			}

			for _, e := range entries {
				source := "generated"
				if e.CacheHit {
					source = "cached"
				}
				fmt.Printf("%s  [%s, %dms]  %q -> %q\n",
					e.CreatedAt.Format(time.RFC3339), source, e.LatencyMs, e.Question, e.Answer)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "eightball.yaml", "path to config file")
	cmd.Flags().IntVar(&limit, "limit", 50, "maximum entries to show")
	cmd.Flags().DurationVar(&since, "since", 0, "only show entries newer than this duration")
	cmd.Flags().BoolVar(&onlyHits, "hits", false, "only show cache hits")
	return cmd
}
