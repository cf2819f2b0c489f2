package cli

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/fincomply/payguard/internal/adapters/driving/watch"
)

var watchDocumentType string

var watchCmd = &cobra.Command{
	Use:   "watch [directory]",
	Short: "Watch a directory and keep the index in sync",
	Long: `Watches a directory for policy documents. New or modified files are
ingested; removed files have their indexed chunks deleted. Runs until
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&watchDocumentType, "type", "compliance_rules", "document type tag for ingested files")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(_ *cobra.Command, args []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := watch.New(complianceService, []string{".txt", ".text", ".pdf", ".docx"}, watchDocumentType)
	err := w.Run(ctx, args[0])
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
