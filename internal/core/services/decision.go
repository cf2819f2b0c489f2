package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/fincomply/payguard/internal/core/domain"
	"github.com/fincomply/payguard/internal/core/ports/driving"
	"github.com/fincomply/payguard/internal/logger"
)

// topicQueries are the fixed retrieval queries issued per validation,
// one per policy concept. Their order is the merge order for
// first-seen-wins limit selection, so it must stay stable.
var topicQueries = []string{
	"daily transfer limit in BHD for customers",
	"per transaction limit in BHD for single transfer",
	"sanctioned or blacklisted countries list",
	"sanctioned individuals or entities list",
}

// topicResult is one topic's retrieval outcome. A failed or empty
// topic contributes nothing to the merged facts; the two cases are
// logged differently but fall back the same way.
type topicResult struct {
	topic string
	text  string
	err   error
}

// ValidateTransfer renders an approve/reject verdict for a proposed
// transfer. Business rejections are decisions, not errors; only
// malformed input produces an error.
func (s *ComplianceService) ValidateTransfer(ctx context.Context, req driving.TransferRequest) (domain.Decision, error) {
	if req.Amount <= 0 {
		return domain.Decision{}, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidInput)
	}

	fallback := domain.EffectiveLimits{
		PerTransaction: s.cfg.PerTransactionLimit,
		Daily:          req.User.DailyLimit,
	}

	// Balance check comes before any retrieval work.
	if req.User.Balance < req.Amount {
		return domain.Reject("Insufficient balance", fallback), nil
	}

	perTx, daily, sanctions := s.retrievePolicyFacts(ctx)

	limits := fallback
	if perTx != nil {
		limits.PerTransaction = *perTx
		limits.PerTransactionFromPolicy = true
	}
	if daily != nil {
		limits.Daily = *daily
		limits.DailyFromPolicy = true
	}

	if req.Amount > limits.PerTransaction {
		return domain.Reject(
			fmt.Sprintf("Amount exceeds per-transaction limit of %g BHD", limits.PerTransaction),
			limits,
		), nil
	}

	spent, err := s.deps.Ledger.DailySpent(ctx, req.User.ID, timeNow())
	if err != nil {
		return domain.Decision{}, fmt.Errorf("daily spend lookup for %s: %w", req.User.ID, err)
	}
	if spent+req.Amount > limits.Daily {
		available := limits.Daily - spent
		if available < 0 {
			available = 0
		}
		return domain.Reject(
			fmt.Sprintf("Daily limit exceeded. Available today: %g BHD", available),
			limits,
		), nil
	}

	if sanctions.ContainsCountry(req.Beneficiary.Country) {
		return domain.Reject(
			"Transfer blocked: Beneficiary country appears on a sanctioned/blacklisted list (RAG).",
			limits,
		), nil
	}

	// The external screener runs regardless of what retrieval found.
	// Extracted lists are best-effort and must not be the sole gate.
	screening, err := s.deps.Screener.Check(ctx, req.Beneficiary.Name, req.Beneficiary.Country)
	if err != nil {
		logger.Error("Sanctions screening failed for %s: %v", req.Beneficiary.Name, err)
	} else if screening.Sanctioned {
		return domain.Reject("Transfer blocked: Beneficiary is sanctioned", limits), nil
	}

	return domain.Approve(limits), nil
}

// retrievePolicyFacts runs the four topic queries concurrently, then
// extracts and merges facts in fixed topic order. Retrieval is an
// enhancement, not a hard dependency: any failure here degrades to
// static configuration, it never blocks a transfer.
func (s *ComplianceService) retrievePolicyFacts(ctx context.Context) (perTx, daily *float64, sanctions domain.SanctionsList) {
	results := make([]topicResult, len(topicQueries))

	g, gctx := errgroup.WithContext(ctx)
	for i, topic := range topicQueries {
		g.Go(func() error {
			results[i] = s.queryTopic(gctx, topic)
			return nil
		})
	}
	// Goroutines never return errors; failures live in the results.
	_ = g.Wait()

	var rules []domain.Rule
	for _, res := range results {
		if res.err != nil {
			if errors.Is(res.err, domain.ErrIndexEmpty) {
				logger.Debug("No indexed policy data for topic %q", res.topic)
			} else {
				logger.Error("Policy retrieval failed for topic %q: %v", res.topic, res.err)
			}
			continue
		}
		if strings.TrimSpace(res.text) == "" {
			logger.Debug("Topic %q retrieved no text", res.topic)
			continue
		}

		rules = append(rules, s.deps.Extractor.ExtractRules(res.text)...)
		sanctions.Merge(s.deps.Extractor.ExtractSanctions(res.text))
	}

	// First extracted value per numeric type wins; later matches are
	// ignored for reproducibility.
	for _, r := range rules {
		if r.Amount <= 0 {
			continue
		}
		switch r.Type {
		case domain.RuleTransactionLimit:
			if perTx == nil {
				v := r.Amount
				perTx = &v
			}
		case domain.RuleTransferLimit:
			if daily == nil {
				v := r.Amount
				daily = &v
			}
		}
	}

	return perTx, daily, sanctions
}

// queryTopic embeds one topic query and searches the index, bounded by
// the per-topic timeout. The concatenated hit texts come back as one
// context string.
func (s *ComplianceService) queryTopic(ctx context.Context, topic string) topicResult {
	tctx, cancel := context.WithTimeout(ctx, s.cfg.TopicTimeout)
	defer cancel()

	vector, err := s.deps.Embedder.Embed(tctx, topic)
	if err != nil {
		return topicResult{topic: topic, err: fmt.Errorf("embed query: %w", err)}
	}

	hits, err := s.deps.Index.Search(tctx, vector, s.cfg.TopK, nil)
	if err != nil {
		return topicResult{topic: topic, err: fmt.Errorf("search: %w", err)}
	}

	texts := make([]string, 0, len(hits))
	for _, h := range hits {
		texts = append(texts, h.Record.Text)
	}
	return topicResult{topic: topic, text: strings.Join(texts, " ")}
}
