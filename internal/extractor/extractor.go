// Package extractor turns cleaned policy text into structured rule and
// sanctions facts. It is pure and deterministic: the same text always
// yields the same facts, in the same order.
package extractor

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fincomply/payguard/internal/core/domain"
)

// RulePattern is one entry of the extraction table: a rule type, the
// pattern that detects it, and whether the captured group must parse
// as a number.
type RulePattern struct {
	Type    domain.RuleType
	Expr    *regexp.Regexp
	Numeric bool
}

// ListPattern captures a comma-separated run of names following a
// trigger phrase, e.g. "sanctioned countries: Iran, Syria."
type ListPattern struct {
	// Countries selects the destination list: countries when true,
	// entities otherwise.
	Countries bool
	Expr      *regexp.Regexp
}

// amountGroup matches a number with optional thousands separators and
// decimals, followed by a Bahraini dinar denomination.
const amountGroup = `(\d+(?:,\d+)*(?:\.\d+)?)\s*(?:BD|BHD|bahraini dinar)`

// DefaultRulePatterns returns the built-in extraction table. Order is
// part of the contract: rules are emitted family by family in this
// order, and within a family in match-position order.
func DefaultRulePatterns() []RulePattern {
	return []RulePattern{
		{
			Type:    domain.RuleTransferLimit,
			Expr:    regexp.MustCompile(`(?i)(?:daily|per-day|maximum)\s+(?:transfer|limit)[\s\S]{0,50}?` + amountGroup),
			Numeric: true,
		},
		{
			Type:    domain.RuleTransactionLimit,
			Expr:    regexp.MustCompile(`(?i)(?:per|single|individual)\s+(?:transaction|transfer)[\s\S]{0,50}?` + amountGroup),
			Numeric: true,
		},
		{
			Type: domain.RuleBlacklistedCountry,
			Expr: regexp.MustCompile(`(?i)(?:blacklisted|prohibited|sanctioned|restricted)\s+(?:countries|nations|jurisdictions)[\s\S]{0,200}?([A-Z][a-zA-Z\s,]+)`),
		},
		{
			Type: domain.RuleSanctionsName,
			Expr: regexp.MustCompile(`(?i)(?:sanctioned|prohibited|blocked)\s+(?:individuals|entities|persons)[\s\S]{0,200}?([A-Z][a-zA-Z\s,]+)`),
		},
	}
}

// DefaultListPatterns returns the built-in sanctions list patterns.
// Cleaned text has no newlines, so lists terminate at a period or
// semicolon.
func DefaultListPatterns() []ListPattern {
	return []ListPattern{
		{
			Countries: true,
			Expr:      regexp.MustCompile(`(?i)(?:sanctioned|blacklisted|prohibited)\s+countries[:\s]+([A-Za-z,\s\-]+)(?:\.|;|\n)`),
		},
		{
			Countries: false,
			Expr:      regexp.MustCompile(`(?i)(?:sanctioned|prohibited)\s+(?:entities|individuals|persons)[:\s]+([A-Za-z,\s\-]+)(?:\.|;|\n)`),
		},
	}
}

// Extractor scans text with an immutable pattern table. The table is
// fixed at construction; there is no runtime mutation.
type Extractor struct {
	rules []RulePattern
	lists []ListPattern
}

// New creates an extractor with the default pattern tables.
func New() *Extractor {
	return NewWithPatterns(DefaultRulePatterns(), DefaultListPatterns())
}

// NewWithPatterns creates an extractor with injected tables, used to
// test patterns in isolation from the decision engine.
func NewWithPatterns(rules []RulePattern, lists []ListPattern) *Extractor {
	return &Extractor{rules: rules, lists: lists}
}

// ExtractRules scans text with every rule pattern independently.
// Matched spans may overlap across families; each match yields one
// rule. A numeric match whose captured group fails to parse is
// silently dropped: ambiguous phrasing is common in free-form policy
// documents and is a precision loss, not an error.
func (e *Extractor) ExtractRules(text string) []domain.Rule {
	var rules []domain.Rule

	for _, pattern := range e.rules {
		matches := pattern.Expr.FindAllStringSubmatchIndex(text, -1)
		for _, m := range matches {
			// m[0]:m[1] is the full match, m[2]:m[3] the captured group.
			if len(m) < 4 || m[2] < 0 {
				continue
			}
			value := strings.TrimSpace(text[m[2]:m[3]])

			rule := domain.Rule{
				Type:    pattern.Type,
				Value:   value,
				Context: text[m[0]:m[1]],
				Start:   m[0],
				End:     m[1],
			}

			if pattern.Numeric {
				amount, ok := parseAmount(value)
				if !ok {
					continue
				}
				rule.Amount = amount
			}

			rules = append(rules, rule)
		}
	}

	return rules
}

// ExtractSanctions scans text with the list patterns and returns the
// deduplicated country and entity lists.
func (e *Extractor) ExtractSanctions(text string) domain.SanctionsList {
	var out domain.SanctionsList

	for _, pattern := range e.lists {
		matches := pattern.Expr.FindAllStringSubmatch(text, -1)
		for _, m := range matches {
			if len(m) < 2 {
				continue
			}
			names := splitNames(m[1])
			if pattern.Countries {
				out.Merge(domain.SanctionsList{Countries: names})
			} else {
				out.Merge(domain.SanctionsList{Entities: names})
			}
		}
	}

	return out
}

// parseAmount strips thousands separators and whitespace and parses
// the remainder as a float.
func parseAmount(value string) (float64, bool) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ',' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, value)

	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// splitNames splits a captured comma-separated run into trimmed,
// non-empty names.
func splitNames(captured string) []string {
	parts := strings.Split(captured, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}
