package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vector index statistics",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
	}

	stats, err := complianceService.Stats(context.Background())
	if err != nil {
		return fmt.Errorf("stats: %w", err)
	}

	cmd.Println("Vector index:")
	cmd.Printf("  Vectors:    %d\n", stats.TotalDocuments)
	cmd.Printf("  Dimension:  %d\n", stats.Dimension)
	cmd.Printf("  Documents:  %d\n", stats.UniqueSources)
	return nil
}
