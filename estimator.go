package workset

import "github.com/tmc/langchaingo/llms"

// SizeEstimator maps fragment text to an approximate unit
// cost. Implementations MUST be pure and deterministic — same
// input, same output, no external state — and monotonically
// non-decreasing in text length. Compaction decisions are
// exactly as reproducible as the estimator is.
type SizeEstimator interface {
	// Estimate returns the approximate size of text in
	// estimator units. Never negative.
	Estimate(text string) int
}

// CharEstimator is the default estimator: ceiling of byte
// count divided by 4, a cheap approximation of token count.
type CharEstimator struct{}

// NewCharEstimator creates a new CharEstimator.
func NewCharEstimator() *CharEstimator {
	return &CharEstimator{}
}

// Estimate returns ceil(len(text) / 4).
func (e *CharEstimator) Estimate(text string) int {
	return (len(text) + 3) / 4
}

// TokenEstimator estimates sizes using the tokenizer for a
// specific model. It is more accurate than [CharEstimator] for
// real model contexts but costs a tokenizer pass per call.
//
// The estimate is deterministic for a fixed model name, so it
// satisfies the [SizeEstimator] contract.
type TokenEstimator struct {
	model string
}

// NewTokenEstimator creates a TokenEstimator for the given
// model name (e.g. "gpt-4o"). Unknown models fall back to the
// tokenizer's default encoding.
func NewTokenEstimator(model string) *TokenEstimator {
	return &TokenEstimator{model: model}
}

// Estimate returns the token count of text for the configured
// model.
func (e *TokenEstimator) Estimate(text string) int {
	n := llms.CountTokens(e.model, text)
	if n < 0 {
		return 0
	}
	return n
}

// Compile-time checks.
var (
	_ SizeEstimator = (*CharEstimator)(nil)
	_ SizeEstimator = (*TokenEstimator)(nil)
)
