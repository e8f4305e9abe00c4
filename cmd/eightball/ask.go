package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/eightball-ai/eightball/pkg/config"
	"github.com/eightball-ai/eightball/pkg/generator"
	"github.com/eightball-ai/eightball/pkg/oracle"
)

func newAskCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the oracle a question from the terminal",
		Args:  cobra.MinimumNArgs(1),
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

			o := oracle.New(st, gen, cfg.Generator.Inference)

			question := strings.Join(args, " ")
			res, err := o.Answer(cmd.Context(), question)
			if err != nil {
				return err
			}

			fmt.Println(res.Answer)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "eightball.yaml", "path to config file")
	return cmd
}
