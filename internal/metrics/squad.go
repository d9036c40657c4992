package metrics

import "strings"

// Punctuation stripped during answer normalization.
const answerPunct = `.,;:!?"'()[]{}«»„“”`

// normalizeAnswer lowercases, strips punctuation and squeezes whitespace so
// answer comparison ignores formatting.
func normalizeAnswer(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(answerPunct, r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExactMatch reports 1 if the prediction equals any gold answer after
// normalization. An empty gold set matches only an empty prediction.
func ExactMatch(pred string, golds []string) float64 {
	p := normalizeAnswer(pred)
	if len(golds) == 0 {
		if p == "" {
			return 1
		}
		return 0
	}
	for _, g := range golds {
		if p == normalizeAnswer(g) {
			return 1
		}
	}
	return 0
}

// AnswerF1 is the best token-overlap F1 between the prediction and any gold
// answer, after normalization.
func AnswerF1(pred string, golds []string) float64 {
	p := strings.Fields(normalizeAnswer(pred))
	if len(golds) == 0 {
		if len(p) == 0 {
			return 1
		}
		return 0
	}

	best := 0.0
	for _, gold := range golds {
		g := strings.Fields(normalizeAnswer(gold))
		if f1 := tokenF1(p, g); f1 > best {
			best = f1
		}
	}
	return best
}

func tokenF1(pred, gold []string) float64 {
	if len(pred) == 0 || len(gold) == 0 {
		if len(pred) == len(gold) {
			return 1
		}
		return 0
	}

	counts := make(map[string]int, len(gold))
	for _, tok := range gold {
		counts[tok]++
	}
	common := 0
	for _, tok := range pred {
		if counts[tok] > 0 {
			counts[tok]--
			common++
		}
	}
	if common == 0 {
		return 0
	}

	precision := float64(common) / float64(len(pred))
	recall := float64(common) / float64(len(gold))
	return 2 * precision * recall / (precision + recall)
}
