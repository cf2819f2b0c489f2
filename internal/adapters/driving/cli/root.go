// Package cli implements the payguard command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/fincomply/payguard/internal/core/ports/driving"
	"github.com/fincomply/payguard/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// complianceService is injected from main before Execute runs.
var complianceService driving.ComplianceService

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "payguard",
	Short: "Compliance-aware transfer validation",
	Long: `payguard ingests compliance policy documents into a vector index
and validates proposed funds transfers against the limits and
sanctions lists retrieved from them.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// SetComplianceService injects the compliance service used by all
// commands.
func SetComplianceService(svc driving.ComplianceService) {
	complianceService = svc
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
