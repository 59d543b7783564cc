package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"

	"github.com/lexigraph/etymograph/internal/build"
	"github.com/lexigraph/etymograph/internal/corpus"
	"github.com/lexigraph/etymograph/internal/graph"
)

var buildFresh bool

var buildCmd = &cobra.Command{
	Use:   "build [corpus.jsonl.gz]",
	Short: "Build the etymology graph from a line-delimited JSON corpus",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		output := resolveDB(cmd, cfg)

		corpusPath, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve corpus path: %w", err)
		}

		if buildFresh {
			_ = os.Remove(output) // Overwrite
		}

		store, err := graph.Open(output)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		if err := store.InitSchema(); err != nil {
			return err
		}

		b := build.NewBuilder(store)
		b.Specs = build.SpecsFromConfig(cfg)
		if cfg.Build != nil {
			if cfg.Build.NodeBatchSize > 0 {
				b.NodeBatchSize = cfg.Build.NodeBatchSize
			}
			if cfg.Build.EdgeBatchSize > 0 {
				b.EdgeBatchSize = cfg.Build.EdgeBatchSize
			}
		}

		start := time.Now()
		fmt.Printf("Building %s from %s...\n", output, args[0])

		stats, err := b.Run(corpus.NewSource(osfs.New("/"), corpusPath))
		if err != nil {
			return err
		}

		fmt.Printf("Indexed %d entries, created %d edges (%d references dropped).\n",
			stats.NodesWritten, stats.EdgesCreated, stats.RefsDropped)
		if stats.LinesSkipped > 0 {
			fmt.Printf("Skipped %d undecodable lines.\n", stats.LinesSkipped)
		}
		fmt.Printf("Done in %v.\n", time.Since(start))
		return nil
	},
}

func init() {
	buildCmd.Flags().BoolVar(&buildFresh, "fresh", false, "Delete any existing database before building")
	rootCmd.AddCommand(buildCmd)
}
