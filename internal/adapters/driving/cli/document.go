package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var documentCmd = &cobra.Command{
	Use:   "document",
	Short: "Manage indexed policy documents",
}

var documentDeleteCmd = &cobra.Command{
	Use:   "delete [document-id]",
	Short: "Remove all indexed chunks of a document",
	Args:  cobra.ExactArgs(1),
	RunE:  runDocumentDelete,
}

func init() {
	documentCmd.AddCommand(documentDeleteCmd)
	rootCmd.AddCommand(documentCmd)
}

func runDocumentDelete(cmd *cobra.Command, args []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
	}

	documentID := args[0]
	removed, err := complianceService.DeleteDocument(context.Background(), documentID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if removed == 0 {
		cmd.Printf("No indexed chunks found for %s\n", documentID)
		return nil
	}

	cmd.Printf("Deleted %d chunks for %s\n", removed, documentID)
	return nil
}
