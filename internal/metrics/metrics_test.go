package metrics

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		preds []string
		golds []string
		want  float64
	}{
		{preds: []string{"a", "b", "c"}, golds: []string{"a", "b", "c"}, want: 1},
		{preds: []string{"a", "b", "c"}, golds: []string{"a", "x", "c"}, want: 2.0 / 3.0},
		{preds: []string{"a"}, golds: []string{"b"}, want: 0},
		{preds: nil, golds: nil, want: 0},
		{preds: []string{"a"}, golds: []string{"a", "b"}, want: 0},
	}

	for _, tc := range tests {
		if got := Accuracy(tc.preds, tc.golds); !almostEqual(got, tc.want) {
			t.Fatalf("Accuracy(%v, %v): got %v want %v", tc.preds, tc.golds, got, tc.want)
		}
	}
}

func TestMacroF1(t *testing.T) {
	// Perfect predictions give 1 regardless of class balance.
	preds := []string{"positive", "negative", "neutral", "positive"}
	if got := MacroF1(preds, preds); !almostEqual(got, 1) {
		t.Fatalf("perfect macro F1: got %v", got)
	}

	// One class fully missed drags the macro average down.
	golds := []string{"positive", "positive", "negative", "negative"}
	skewed := []string{"positive", "positive", "positive", "positive"}
	// positive: precision 0.5, recall 1 -> F1 2/3; negative: F1 0.
	if got := MacroF1(skewed, golds); !almostEqual(got, 1.0/3.0) {
		t.Fatalf("skewed macro F1: got %v want %v", got, 1.0/3.0)
	}
}

func TestMatthewsCorrCoef(t *testing.T) {
	golds := []string{"pos", "pos", "neg", "neg"}

	if got := MatthewsCorrCoef(golds, golds); !almostEqual(got, 1) {
		t.Fatalf("perfect MCC: got %v", got)
	}

	inverted := []string{"neg", "neg", "pos", "pos"}
	if got := MatthewsCorrCoef(inverted, golds); !almostEqual(got, -1) {
		t.Fatalf("inverted MCC: got %v", got)
	}

	constant := []string{"pos", "pos", "pos", "pos"}
	if got := MatthewsCorrCoef(constant, golds); !almostEqual(got, 0) {
		t.Fatalf("constant MCC: got %v", got)
	}
}

func TestExactMatch(t *testing.T) {
	tests := []struct {
		pred  string
		golds []string
		want  float64
	}{
		{pred: "Stockholm", golds: []string{"Stockholm"}, want: 1},
		{pred: " stockholm. ", golds: []string{"Stockholm"}, want: 1},
		{pred: "Stockholm", golds: []string{"Oslo", "Stockholm"}, want: 1},
		{pred: "Oslo", golds: []string{"Stockholm"}, want: 0},
		{pred: "", golds: nil, want: 1},
		{pred: "noget", golds: nil, want: 0},
	}

	for _, tc := range tests {
		if got := ExactMatch(tc.pred, tc.golds); !almostEqual(got, tc.want) {
			t.Fatalf("ExactMatch(%q, %v): got %v want %v", tc.pred, tc.golds, got, tc.want)
		}
	}
}

func TestAnswerF1(t *testing.T) {
	if got := AnswerF1("Sveriges hovedstad", []string{"Sveriges hovedstad"}); !almostEqual(got, 1) {
		t.Fatalf("full overlap: got %v", got)
	}

	// One of two predicted tokens overlaps a two-token gold answer.
	got := AnswerF1("hovedstad Oslo", []string{"Sveriges hovedstad"})
	if !almostEqual(got, 0.5) {
		t.Fatalf("partial overlap: got %v want 0.5", got)
	}

	if got := AnswerF1("helt forkert", []string{"Stockholm"}); !almostEqual(got, 0) {
		t.Fatalf("no overlap: got %v", got)
	}

	// Best gold answer wins.
	got = AnswerF1("Stockholm", []string{"Oslo", "Stockholm by"})
	want := 2.0 * (1.0 * 0.5) / 1.5
	if !almostEqual(got, want) {
		t.Fatalf("best-of-golds: got %v want %v", got, want)
	}
}
