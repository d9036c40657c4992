package qa

import (
	"errors"
	"fmt"

	"github.com/nordtext/scandibench/internal/tokenizer"
)

// PrepareTrainingExamples tokenizes a batch of raw examples into overlapping
// windows and labels each window with the token span of the answer, or as
// unanswerable when the answer does not fall wholly inside the window.
//
// Only the first listed answer is used for labeling; evaluation against all
// answers happens elsewhere. The function is pure: the same batch always
// yields the same windows.
func PrepareTrainingExamples(tok tokenizer.PairTokenizer, examples []RawExample, opts tokenizer.PairOptions) ([]LabeledWindow, error) {
	if tok == nil {
		return nil, errors.New("qa: nil tokenizer")
	}

	questions := make([]string, len(examples))
	contexts := make([]string, len(examples))
	for i := range examples {
		if err := examples[i].Validate(); err != nil {
			return nil, err
		}
		questions[i] = examples[i].Question
		contexts[i] = examples[i].Context
	}

	encs, err := tok.EncodePairs(questions, contexts, opts)
	if err != nil {
		return nil, err
	}

	cls, err := tok.ClassTokenID()
	if err != nil {
		return nil, fmt.Errorf("qa: resolve class token: %w", err)
	}

	out := make([]LabeledWindow, 0, len(encs))
	for _, enc := range encs {
		if enc.SampleIndex < 0 || enc.SampleIndex >= len(examples) {
			return nil, fmt.Errorf("qa: window maps to sample %d of %d", enc.SampleIndex, len(examples))
		}
		ex := &examples[enc.SampleIndex]

		out = append(out, LabeledWindow{
			Encoding: enc,
			Label:    labelWindow(&enc, ex),
			Sentinel: sentinelIndex(enc.IDs, cls),
		})
	}
	return out, nil
}

// labelWindow locates the first gold answer inside one window.
func labelWindow(enc *tokenizer.Encoding, ex *RawExample) SpanLabel {
	if len(ex.Answers.Text) == 0 {
		return Unanswerable()
	}

	startChar := ex.Answers.Start[0]
	endChar := startChar + len(ex.Answers.Text[0])

	first, last, ok := enc.ContextBounds()
	if !ok {
		return Unanswerable()
	}

	// The answer must lie wholly inside the window's context span;
	// partial overlaps near a boundary belong to a neighboring window.
	if enc.Offsets[first].Start > startChar || enc.Offsets[last].End < endChar {
		return Unanswerable()
	}

	ts := first
	for ts <= last && enc.Offsets[ts].Start <= startChar {
		ts++
	}
	te := last
	for te >= first && enc.Offsets[te].End >= endChar {
		te--
	}
	return Answered(ts-1, te+1)
}

// sentinelIndex is the position of the class token within the window,
// falling back to position zero if the id is absent.
func sentinelIndex(ids []int, cls int) int {
	for i, id := range ids {
		if id == cls {
			return i
		}
	}
	return 0
}
