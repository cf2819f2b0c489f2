package domain

import "time"

// User is the sender of a transfer, as supplied by the caller. Account
// persistence and authentication live outside this core.
type User struct {
	// ID identifies the user for daily-spend aggregation.
	ID string

	// Balance is the current account balance.
	Balance float64

	// DailyLimit is the user's configured daily transfer limit,
	// used when no policy document overrides it.
	DailyLimit float64
}

// Beneficiary is the receiving party of a transfer.
type Beneficiary struct {
	// Name is the beneficiary's full name, screened against
	// sanctions lists.
	Name string

	// Country is the destination country.
	Country string

	// IBAN is the destination account identifier.
	IBAN string
}

// Transfer is a completed transfer recorded in the ledger.
type Transfer struct {
	// Reference is the unique transfer reference number.
	Reference string

	// SenderID is the user who sent the transfer.
	SenderID string

	// Amount is the transferred amount.
	Amount float64

	// Currency is the ISO currency code.
	Currency string

	// BeneficiaryName and BeneficiaryCountry identify the recipient.
	BeneficiaryName    string
	BeneficiaryCountry string

	// CompletedAt is when the transfer settled. Daily limits are
	// aggregated over the server-local calendar day of this time.
	CompletedAt time.Time
}

// EffectiveLimits are the limits actually enforced for one validation
// call, after merging extracted policy facts with static configuration.
// They are recomputed on every call and never cached.
type EffectiveLimits struct {
	// PerTransaction is the per-transfer cap.
	PerTransaction float64

	// Daily is the per-day aggregate cap.
	Daily float64

	// PerTransactionFromPolicy and DailyFromPolicy report whether the
	// value came from retrieved policy text rather than configuration.
	PerTransactionFromPolicy bool
	DailyFromPolicy          bool
}

// Decision is the outcome of a transfer validation. Business
// rejections are decisions, not errors.
type Decision struct {
	// Approved is true only when every check passed.
	Approved bool

	// Reason explains a rejection. Empty when approved.
	Reason string

	// Limits are the effective limits that were enforced.
	Limits EffectiveLimits
}

// Reject builds a rejecting decision with the given reason.
func Reject(reason string, limits EffectiveLimits) Decision {
	return Decision{Approved: false, Reason: reason, Limits: limits}
}

// Approve builds an approving decision.
func Approve(limits EffectiveLimits) Decision {
	return Decision{Approved: true, Limits: limits}
}
