// Package tokenizer estimates prompt sizes for the assistant.
package tokenizer

import (
	"strings"
)

// EstimateTokens provides a rough token count estimate.
// Uses the heuristic of ~4 characters per token for English text.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	chars := len(text)

	// Average of word-based (~1.3 tokens per word) and char-based (~4 chars
	// per token) estimates.
	wordEstimate := int(float64(words) * 1.3)
	charEstimate := chars / 4

	return (wordEstimate + charEstimate) / 2
}

// CountWithinBudget returns how many leading items fit in budget tokens,
// counting one extra token per item for the separator.
func CountWithinBudget(items []string, budget int) int {
	if budget <= 0 {
		return 0
	}
	used := 0
	for i, item := range items {
		cost := EstimateTokens(item) + 1
		if used+cost > budget {
			return i
		}
		used += cost
	}
	return len(items)
}
