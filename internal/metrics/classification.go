// Package metrics computes the scores reported by the benchmarks.
package metrics

import "math"

// Accuracy is the fraction of predictions equal to their gold label.
// Returns 0 for empty input.
func Accuracy(preds, golds []string) float64 {
	if len(preds) == 0 || len(preds) != len(golds) {
		return 0
	}
	correct := 0
	for i := range preds {
		if preds[i] == golds[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(preds))
}

// MacroF1 averages the per-class F1 scores over every class present in the
// gold labels or predictions.
func MacroF1(preds, golds []string) float64 {
	if len(preds) == 0 || len(preds) != len(golds) {
		return 0
	}

	classes := make(map[string]bool)
	for _, g := range golds {
		classes[g] = true
	}
	for _, p := range preds {
		classes[p] = true
	}
	if len(classes) == 0 {
		return 0
	}

	var sum float64
	for class := range classes {
		var tp, fp, fn float64
		for i := range preds {
			switch {
			case preds[i] == class && golds[i] == class:
				tp++
			case preds[i] == class:
				fp++
			case golds[i] == class:
				fn++
			}
		}
		if tp > 0 {
			precision := tp / (tp + fp)
			recall := tp / (tp + fn)
			sum += 2 * precision * recall / (precision + recall)
		}
	}
	return sum / float64(len(classes))
}

// MatthewsCorrCoef is the multi-class Matthews correlation coefficient,
// computed from the confusion matrix. Returns 0 when undefined.
func MatthewsCorrCoef(preds, golds []string) float64 {
	if len(preds) == 0 || len(preds) != len(golds) {
		return 0
	}

	index := make(map[string]int)
	for _, s := range golds {
		if _, ok := index[s]; !ok {
			index[s] = len(index)
		}
	}
	for _, s := range preds {
		if _, ok := index[s]; !ok {
			index[s] = len(index)
		}
	}

	k := len(index)
	conf := make([][]float64, k)
	for i := range conf {
		conf[i] = make([]float64, k)
	}
	for i := range preds {
		conf[index[golds[i]]][index[preds[i]]]++
	}

	n := float64(len(preds))
	var trace float64
	rowSum := make([]float64, k)
	colSum := make([]float64, k)
	for i := 0; i < k; i++ {
		trace += conf[i][i]
		for j := 0; j < k; j++ {
			rowSum[i] += conf[i][j]
			colSum[j] += conf[i][j]
		}
	}

	var dot, rowSq, colSq float64
	for i := 0; i < k; i++ {
		dot += rowSum[i] * colSum[i]
		rowSq += rowSum[i] * rowSum[i]
		colSq += colSum[i] * colSum[i]
	}

	num := trace*n - dot
	den := math.Sqrt(n*n-rowSq) * math.Sqrt(n*n-colSq)
	if den == 0 {
		return 0
	}
	return num / den
}
