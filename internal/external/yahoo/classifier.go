package yahoo

import (
	"strings"

	"github.com/wonny/quickscope/internal/contracts"
)

// Lexicon headline classifier. A word-list scorer is crude next to a trained
// model, but it is deterministic, instant and never rate limited; the fusion
// layer downstream treats any classifier output the same way.

var positiveWords = []string{
	"beat", "beats", "surge", "surges", "soar", "soars", "rally", "rallies",
	"upgrade", "upgraded", "raises", "record", "growth", "profit", "jump",
	"jumps", "strong", "outperform", "buyback", "dividend increase", "wins",
	"expands", "tops", "bullish",
}

var negativeWords = []string{
	"miss", "misses", "fall", "falls", "plunge", "plunges", "drop", "drops",
	"downgrade", "downgraded", "cut", "cuts", "lawsuit", "recall", "weak",
	"layoff", "layoffs", "warning", "probe", "decline", "declines", "slump",
	"bearish", "fraud", "bankruptcy",
}

// classifyHeadline labels a headline by lexicon hits. Confidence grows with
// the hit margin and is capped below certainty; a headline with no hits is
// neutral at half confidence.
func classifyHeadline(title string) (contracts.SentimentLabel, float64) {
	lower := strings.ToLower(title)

	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return contracts.SentimentPositive, hitConfidence(pos - neg)
	case neg > pos:
		return contracts.SentimentNegative, hitConfidence(neg - pos)
	default:
		return contracts.SentimentNeutral, 0.5
	}
}

func hitConfidence(margin int) float64 {
	conf := 0.6 + 0.1*float64(margin-1)
	if conf > 0.9 {
		conf = 0.9
	}
	return conf
}
