package domain

import "strings"

// RuleType classifies an extracted compliance rule.
type RuleType string

const (
	// RuleTransferLimit is a daily aggregate transfer limit.
	RuleTransferLimit RuleType = "transfer_limit"

	// RuleTransactionLimit is a per-transaction limit.
	RuleTransactionLimit RuleType = "transaction_limit"

	// RuleBlacklistedCountry is a prohibited destination country.
	RuleBlacklistedCountry RuleType = "blacklisted_country"

	// RuleSanctionsName is a sanctioned individual or entity.
	RuleSanctionsName RuleType = "sanctions_name"
)

// Numeric reports whether the rule type carries a numeric value.
func (t RuleType) Numeric() bool {
	return t == RuleTransferLimit || t == RuleTransactionLimit
}

// Rule is one structured fact extracted from policy text. Multiple
// rules of the same type may coexist; selection between them is the
// decision engine's responsibility, not the extractor's.
type Rule struct {
	// Type classifies the rule.
	Type RuleType

	// Value is the raw matched value (number text or name).
	Value string

	// Amount is the parsed numeric value for numeric rule types.
	Amount float64

	// Context is the full matched span, kept for audit trails.
	Context string

	// Start and End are byte offsets of the match in the scanned text.
	Start int
	End   int
}

// SanctionsList holds countries and entities extracted from sanctions
// text. Values are deduplicated at extraction time and compared
// case-insensitively.
type SanctionsList struct {
	Countries []string
	Entities  []string
}

// ContainsCountry reports whether the list names the given country,
// ignoring case and surrounding whitespace.
func (s SanctionsList) ContainsCountry(country string) bool {
	want := NormalizeName(country)
	for _, c := range s.Countries {
		if NormalizeName(c) == want {
			return true
		}
	}
	return false
}

// Merge unions another list into this one, preserving dedup.
func (s *SanctionsList) Merge(other SanctionsList) {
	s.Countries = appendUnique(s.Countries, other.Countries)
	s.Entities = appendUnique(s.Entities, other.Entities)
}

// NormalizeName lowercases and trims a country or entity name for
// comparison.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func appendUnique(dst, src []string) []string {
	seen := make(map[string]struct{}, len(dst))
	for _, v := range dst {
		seen[NormalizeName(v)] = struct{}{}
	}
	for _, v := range src {
		key := NormalizeName(v)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, v)
	}
	return dst
}
