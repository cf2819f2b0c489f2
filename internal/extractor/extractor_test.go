package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fincomply/payguard/internal/core/domain"
)

func TestExtractRules_TransactionLimit(t *testing.T) {
	e := New()

	rules := e.ExtractRules("The per transaction limit is 500 BHD for all customers.")

	require.Len(t, rules, 1)
	assert.Equal(t, domain.RuleTransactionLimit, rules[0].Type)
	assert.Equal(t, 500.0, rules[0].Amount)
	assert.Contains(t, rules[0].Context, "per transaction")
}

func TestExtractRules_DailyLimit(t *testing.T) {
	e := New()

	rules := e.ExtractRules("Daily transfer limit of 1,000 BHD applies.")

	require.Len(t, rules, 1)
	assert.Equal(t, domain.RuleTransferLimit, rules[0].Type)
	assert.Equal(t, 1000.0, rules[0].Amount)
}

func TestExtractRules_ThousandsSeparatorsAndDecimals(t *testing.T) {
	e := New()

	rules := e.ExtractRules("Maximum transfer amount is 12,500.75 BHD per day.")

	require.Len(t, rules, 1)
	assert.Equal(t, 12500.75, rules[0].Amount)
}

func TestExtractRules_MultipleMatchesKeepPositionOrder(t *testing.T) {
	e := New()

	text := "Per transaction limit is 500 BHD. A single transfer may not exceed 300 BHD."
	rules := e.ExtractRules(text)

	require.Len(t, rules, 2)
	assert.Equal(t, 500.0, rules[0].Amount)
	assert.Equal(t, 300.0, rules[1].Amount)
	assert.Less(t, rules[0].Start, rules[1].Start)
}

func TestExtractRules_NoMatches(t *testing.T) {
	e := New()

	rules := e.ExtractRules("Welcome to our terms and conditions document.")

	assert.Empty(t, rules)
}

func TestExtractRules_Deterministic(t *testing.T) {
	e := New()
	text := "Daily limit is 1000 BHD. Per transaction limit is 500 BHD. Sanctioned countries: Iran, Syria."

	first := e.ExtractRules(text)
	second := e.ExtractRules(text)

	assert.Equal(t, first, second)
}

func TestExtractSanctions_Countries(t *testing.T) {
	e := New()

	sanctions := e.ExtractSanctions("Sanctioned countries: North Korea, Iran, Syria.")

	assert.ElementsMatch(t, []string{"North Korea", "Iran", "Syria"}, sanctions.Countries)
	assert.Empty(t, sanctions.Entities)
}

func TestExtractSanctions_Entities(t *testing.T) {
	e := New()

	sanctions := e.ExtractSanctions("Prohibited entities: Acme Holdings, Global Trade Corp.")

	assert.ElementsMatch(t, []string{"Acme Holdings", "Global Trade Corp"}, sanctions.Entities)
}

func TestExtractSanctions_Deduplicates(t *testing.T) {
	e := New()

	text := "Sanctioned countries: Iran, Syria. Blacklisted countries: iran, Cuba."
	sanctions := e.ExtractSanctions(text)

	assert.Len(t, sanctions.Countries, 3)
	assert.True(t, sanctions.ContainsCountry("IRAN"))
	assert.True(t, sanctions.ContainsCountry(" cuba "))
}

func TestExtractSanctions_NoTriggerPhrase(t *testing.T) {
	e := New()

	sanctions := e.ExtractSanctions("We operate in Bahrain, Kuwait and Oman.")

	assert.Empty(t, sanctions.Countries)
	assert.Empty(t, sanctions.Entities)
}

func TestNewWithPatterns_InjectedTable(t *testing.T) {
	patterns := DefaultRulePatterns()[:1] // transfer_limit only
	e := NewWithPatterns(patterns, nil)

	rules := e.ExtractRules("Per transaction limit is 500 BHD. Daily transfer limit is 1000 BHD.")

	require.Len(t, rules, 1)
	assert.Equal(t, domain.RuleTransferLimit, rules[0].Type)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"plain integer", "500", 500, true},
		{"thousands separator", "1,000", 1000, true},
		{"decimal", "250.50", 250.50, true},
		{"separator and decimal", "12,500.75", 12500.75, true},
		{"embedded space", "1 000", 1000, true},
		{"not a number", "five hundred", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseAmount(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
