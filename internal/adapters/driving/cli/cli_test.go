package cli

import (
	"bytes"
	"context"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driving"
)

// mockComplianceService implements driving.ComplianceService for
// command tests.
type mockComplianceService struct {
	report    *driving.IngestReport
	ingestErr error
	decision  domain.Decision
	deleted   int
	stats     domain.IndexStats

	lastRequest driving.TransferRequest
	recorded    []domain.Transfer
}

func (m *mockComplianceService) Ingest(_ context.Context, raw *domain.RawDocument) (*driving.IngestReport, error) {
	if m.ingestErr != nil {
		return nil, m.ingestErr
	}
	if m.report != nil {
		return m.report, nil
	}
	return &driving.IngestReport{DocumentID: raw.DocumentID}, nil
}

func (m *mockComplianceService) ValidateTransfer(_ context.Context, req driving.TransferRequest) (domain.Decision, error) {
	m.lastRequest = req
	return m.decision, nil
}

func (m *mockComplianceService) DeleteDocument(_ context.Context, _ string) (int, error) {
	return m.deleted, nil
}

func (m *mockComplianceService) RecordTransfer(_ context.Context, req driving.TransferRequest, currency string) (domain.Transfer, error) {
	transfer := domain.Transfer{Reference: "TXN_TEST", SenderID: req.User.ID, Amount: req.Amount, Currency: currency}
	m.recorded = append(m.recorded, transfer)
	return transfer, nil
}

func (m *mockComplianceService) Stats(_ context.Context) (domain.IndexStats, error) {
	return m.stats, nil
}

// setupTestService wires a mock service into the package-level var and
// returns it with a cleanup.
func setupTestService(svc *mockComplianceService) func() {
	prev := complianceService
	complianceService = svc
	return func() {
		complianceService = prev
	}
}

// execute runs the root command with args and captures output.
func execute(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return buf.String(), err
}
