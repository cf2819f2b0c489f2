package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driving"
)

var (
	validateUserID      string
	validateBalance     float64
	validateDailyLimit  float64
	validateBeneficiary string
	validateCountry     string
	validateIBAN        string
	validateCurrency    string
	validateRecord      bool
	validateJSON        bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [amount]",
	Short: "Validate a proposed transfer",
	Long: `Runs the full compliance check for a proposed transfer: balance,
per-transaction and daily limits (policy-aware), and sanctions
screening. With --record, an approved transfer is booked into the
ledger so it counts against today's limit.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateUserID, "user", "local", "sender user id")
	validateCmd.Flags().Float64Var(&validateBalance, "balance", 0, "sender's current balance")
	validateCmd.Flags().Float64Var(&validateDailyLimit, "daily-limit", 1000, "sender's daily transfer limit")
	validateCmd.Flags().StringVar(&validateBeneficiary, "beneficiary", "", "beneficiary name")
	validateCmd.Flags().StringVar(&validateCountry, "country", "", "beneficiary country")
	validateCmd.Flags().StringVar(&validateIBAN, "iban", "", "beneficiary IBAN")
	validateCmd.Flags().StringVar(&validateCurrency, "currency", "BHD", "transfer currency")
	validateCmd.Flags().BoolVar(&validateRecord, "record", false, "record the transfer when approved")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the decision as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if complianceService == nil {
		return errors.New("compliance service not configured")
	}

	amount, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", args[0], err)
	}

	req := driving.TransferRequest{
		Amount: amount,
		User: domain.User{
			ID:         validateUserID,
			Balance:    validateBalance,
			DailyLimit: validateDailyLimit,
		},
		Beneficiary: domain.Beneficiary{
			Name:    validateBeneficiary,
			Country: validateCountry,
			IBAN:    validateIBAN,
		},
	}

	ctx := context.Background()
	decision, err := complianceService.ValidateTransfer(ctx, req)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if validateJSON {
		data, err := json.MarshalIndent(decision, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal decision: %w", err)
		}
		cmd.Println(string(data))
	} else if decision.Approved {
		cmd.Printf("APPROVED: %g %s to %s\n", amount, validateCurrency, validateBeneficiary)
		cmd.Printf("  Limits: %g per transaction, %g daily\n", decision.Limits.PerTransaction, decision.Limits.Daily)
	} else {
		cmd.Printf("REJECTED: %s\n", decision.Reason)
	}

	if decision.Approved && validateRecord {
		transfer, err := complianceService.RecordTransfer(ctx, req, validateCurrency)
		if err != nil {
			return fmt.Errorf("record transfer: %w", err)
		}
		cmd.Printf("Recorded as %s\n", transfer.Reference)
	}

	return nil
}
