package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexigraph/etymograph/internal/graph"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print node, edge, and per-relation cardinality statistics",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		store, err := graph.OpenReadOnly(resolveDB(cmd, cfg))
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()

		report, err := graph.CollectStats(store)
		if err != nil {
			return err
		}

		fmt.Printf("Nodes: %d\n", report.Nodes)
		fmt.Printf("Edges: %d\n", report.Edges)
		for _, k := range report.Kinds {
			fmt.Printf("  %-12s %9d edges %9d sources %9d destinations\n",
				k.Kind, k.Edges, k.DistinctSrc, k.DistinctDst)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
