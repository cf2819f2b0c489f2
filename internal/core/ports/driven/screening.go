package driven

import "context"

// ScreeningResult is the verdict of an external sanctions check.
type ScreeningResult struct {
	// Sanctioned is true when the name or country is on a sanctions
	// list held by the external authority.
	Sanctioned bool

	// Reason explains a positive match.
	Reason string
}

// SanctionsScreener is the external sanctions-screening authority.
// It is consulted on every transfer regardless of what the retrieval
// layer found: extracted lists are best-effort and must not be the
// sole gate.
type SanctionsScreener interface {
	// Check screens a beneficiary name and country.
	Check(ctx context.Context, name, country string) (ScreeningResult, error)
}
