// Package mockapi simulates the external sanctions-screening authority
// the bank consults on every transfer. In production a real screening
// provider sits behind this adapter; the simulated one keeps static
// lists and an optional artificial latency.
package mockapi

import (
	"context"
	"fmt"
	"time"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driven"
)

// Ensure Screener implements the interface.
var _ driven.SanctionsScreener = (*Screener)(nil)

// DefaultSanctionedCountries mirrors the static blacklist the bank
// seeds the screening provider with.
var DefaultSanctionedCountries = []string{"North Korea", "Iran", "Syria", "Cuba", "Crimea Region"}

// Screener is a static-list sanctions screener.
type Screener struct {
	countries map[string]struct{}
	names     map[string]struct{}
	delay     time.Duration
}

// Option configures the screener.
type Option func(*Screener)

// WithCountries replaces the sanctioned-country list.
func WithCountries(countries []string) Option {
	return func(s *Screener) {
		s.countries = normalizeSet(countries)
	}
}

// WithNames replaces the sanctioned-name list.
func WithNames(names []string) Option {
	return func(s *Screener) {
		s.names = normalizeSet(names)
	}
}

// WithDelay adds artificial latency per check, to exercise timeout
// behaviour in integration setups.
func WithDelay(d time.Duration) Option {
	return func(s *Screener) {
		s.delay = d
	}
}

// New creates a screener with the default country list and no names.
func New(opts ...Option) *Screener {
	s := &Screener{
		countries: normalizeSet(DefaultSanctionedCountries),
		names:     map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check screens a beneficiary name and country against the lists.
func (s *Screener) Check(ctx context.Context, name, country string) (driven.ScreeningResult, error) {
	if s.delay > 0 {
		select {
		case <-time.After(s.delay):
		case <-ctx.Done():
			return driven.ScreeningResult{}, ctx.Err()
		}
	}

	if _, ok := s.countries[domain.NormalizeName(country)]; ok {
		return driven.ScreeningResult{
			Sanctioned: true,
			Reason:     fmt.Sprintf("country %q is sanctioned", country),
		}, nil
	}
	if _, ok := s.names[domain.NormalizeName(name)]; ok {
		return driven.ScreeningResult{
			Sanctioned: true,
			Reason:     fmt.Sprintf("name %q is sanctioned", name),
		}, nil
	}

	return driven.ScreeningResult{}, nil
}

func normalizeSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[domain.NormalizeName(v)] = struct{}{}
	}
	return set
}
