package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/eightball-ai/eightball/pkg/config"
	"github.com/eightball-ai/eightball/pkg/generator"
	"github.com/eightball-ai/eightball/pkg/history"
	"github.com/eightball-ai/eightball/pkg/oracle"
	"github.com/eightball-ai/eightball/pkg/server"
	"github.com/eightball-ai/eightball/pkg/store"
	redisstore "github.com/eightball-ai/eightball/pkg/store/redis"
	sqlitestore "github.com/eightball-ai/eightball/pkg/store/sqlite"
)

func openStore(cfg *config.Config) (store.Store, func() error, error) {
	switch cfg.Store.Backend {
	case "redis":
		s, err := redisstore.New(cfg.Store.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("init redis store: %w", err)
		}
		return s, s.Close, nil
	default:
		s, err := sqlitestore.New(cfg.Store.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("init sqlite store: %w", err)
		}
		return s, s.Close, nil
	}
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the answer service",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			st, closeStore, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = closeStore() }()

			gen, err := generator.NewLlamaClient(cfg.Generator.URL)
			if err != nil {
				return fmt.Errorf("init generator: %w", err)
			}

			var hist *history.Logger
			if cfg.History.Enabled {
				hist, err = history.New(cfg.History)
				if err != nil {
					return fmt.Errorf("init history: %w", err)
				}
				defer func() { _ = hist.Close() }()
			}

			o := oracle.New(st, gen, cfg.Generator.Inference)
			srv := server.New(cfg, o, hist)

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			log.Printf("starting eightball with config: %s", configPath)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "eightball.yaml", "path to config file")
	return cmd
}
