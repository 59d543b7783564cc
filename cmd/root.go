package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lexigraph/etymograph/internal/config"
)

var (
	dbPath     string
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "etymograph",
	Short: "Etymograph: build and query an etymology graph from lexical corpora",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "etymology.db", "Path to the graph database")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to an HCL config file")
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	return config.Load(configPath)
}

// resolveDB picks the database path: an explicit --db flag wins over the
// config file, which wins over the flag default.
func resolveDB(cmd *cobra.Command, cfg *config.Config) string {
	if cmd.Flags().Changed("db") || cfg.DBPath == "" {
		return dbPath
	}
	return cfg.DBPath
}
