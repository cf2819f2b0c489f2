package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fincomply/payguard/internal/core/domain"
)

var (
	ingestDocumentID   string
	ingestDocumentType string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Ingest a policy document into the index",
	Long: `Reads a policy document (.txt, .pdf or .docx), extracts its text,
chunks and embeds it, and stores the result in the vector index.
Extracted compliance rules and sanctions lists are reported.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestDocumentID, "id", "", "document identifier (default: file name without extension)")
	ingestCmd.Flags().StringVar(&ingestDocumentType, "type", "", "document type tag, e.g. compliance_rules or sanctions_list")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
	}

	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	documentID := ingestDocumentID
	if documentID == "" {
		base := filepath.Base(path)
		documentID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	raw := &domain.RawDocument{
		DocumentID:   documentID,
		Path:         path,
		Content:      content,
		DocumentType: ingestDocumentType,
	}

	report, err := complianceService.Ingest(context.Background(), raw)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %s (%d words, %d chunks indexed)\n", report.DocumentID, report.TotalWords, report.ChunksIndexed)
	if len(report.Rules) > 0 {
		cmd.Println("Extracted rules:")
		for _, r := range report.Rules {
			if r.Type.Numeric() {
				cmd.Printf("  %s: %g BHD\n", r.Type, r.Amount)
			} else {
				cmd.Printf("  %s: %s\n", r.Type, r.Value)
			}
		}
	}
	if len(report.Sanctions.Countries) > 0 {
		cmd.Printf("Sanctioned countries: %s\n", strings.Join(report.Sanctions.Countries, ", "))
	}
	if len(report.Sanctions.Entities) > 0 {
		cmd.Printf("Sanctioned entities: %s\n", strings.Join(report.Sanctions.Entities, ", "))
	}

	return nil
}
