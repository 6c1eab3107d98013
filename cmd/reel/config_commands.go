package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/mmcdole/reel/internal/config"
	"github.com/spf13/cobra"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigValidateCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a configuration file with the default settings",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target != "" && !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			written, err := config.SaveConfig(config.DefaultConfig(), target)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote default configuration to %s\n", written)
			fmt.Fprintln(out, "Set omdb.api_key (or export REEL_OMDB_API_KEY) to use your own OMDb key.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the configuration and report the effective settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			storage := cfg.Storage.Path
			if storage == "" {
				storage = "(memory only)"
			}
			browser := cfg.Browser.Command
			if browser == "" {
				browser = "(system default)"
			}
			rows := [][]string{
				{"omdb.base_url", cfg.OMDb.BaseURL},
				{"omdb.timeout", cfg.OMDb.Timeout.String()},
				{"search.debounce", cfg.Search.Debounce.String()},
				{"search.min_query_length", fmt.Sprint(cfg.Search.MinQueryLength)},
				{"search.rank_results", fmt.Sprint(cfg.Search.RankResults)},
				{"storage.path", storage},
				{"logging.file", cfg.Logging.File},
				{"logging.level", cfg.Logging.Level},
				{"browser.command", browser},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, paint("Configuration valid", ansiGreen, shouldColorize(out)))
			fmt.Fprintln(out, renderTable([]string{"Setting", "Value"}, rows, nil))
			return nil
		},
	}
}
