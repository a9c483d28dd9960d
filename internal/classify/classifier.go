package classify

import "strings"

// PriorityThreshold marks an item as Solana-priority when its solana
// score exceeds it.
const PriorityThreshold = 0.3

// Result carries everything the classifier derives from an item's text.
type Result struct {
	Category       string
	SolanaScore    float64
	SolanaPriority bool
}

// Classify assigns exactly one category tag from the closed taxonomy.
// It is total and deterministic: every input, including the empty
// string, yields exactly one tag; cascade order is the sole tie-break.
func Classify(text string) Result {
	lower := strings.ToLower(text)

	score, matched := solanaScore(lower)
	res := Result{
		SolanaScore:    score,
		SolanaPriority: score > PriorityThreshold,
	}

	if matched {
		res.Category = firstMatch(lower, solanaCascade, TagSolanaGeneral)
		return res
	}

	res.Category = firstMatch(lower, generalCascade, TagGeneral)
	return res
}

// SolanaScore computes the weighted Solana-ecosystem keyword score,
// normalized to [0,1] by the maximum attainable weighted sum.
func SolanaScore(text string) float64 {
	score, _ := solanaScore(strings.ToLower(text))
	return score
}

func solanaScore(lower string) (float64, bool) {
	var sum float64
	matched := false

	for _, group := range solanaKeywordGroups {
		for _, term := range group.terms {
			if strings.Contains(lower, term) {
				sum += group.weight
				matched = true
			}
		}
	}

	score := sum / maxSolanaWeight
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score, matched
}

func firstMatch(lower string, cascade []rule, fallback string) string {
	for _, r := range cascade {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.tag
			}
		}
	}
	return fallback
}
