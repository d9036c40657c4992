// Package qa turns raw (question, context, answer-span) triples into
// tokenized, windowed, labeled examples for extractive question answering.
package qa

import (
	"fmt"

	"github.com/nordtext/scandibench/internal/tokenizer"
)

// Answers holds the gold answers of one example. Text and Start are
// parallel: Start[i] is the character offset of Text[i] in the context.
type Answers struct {
	Text  []string `json:"text"`
	Start []int    `json:"answer_start"`
}

// RawExample is one unprocessed question-answering example.
type RawExample struct {
	ID       string  `json:"id,omitempty"`
	Question string  `json:"question"`
	Context  string  `json:"context"`
	Answers  Answers `json:"answers"`
}

// Validate reports the first structural problem with the example. A failed
// validation is a hard error for the whole batch.
func (e *RawExample) Validate() error {
	if e == nil {
		return fmt.Errorf("qa: nil example")
	}
	if len(e.Answers.Text) != len(e.Answers.Start) {
		return fmt.Errorf("qa: example %q: %d answer texts vs %d answer starts",
			e.ID, len(e.Answers.Text), len(e.Answers.Start))
	}
	for i, start := range e.Answers.Start {
		end := start + len(e.Answers.Text[i])
		if start < 0 || end > len(e.Context) {
			return fmt.Errorf("qa: example %q: answer %d spans [%d, %d) outside context of length %d",
				e.ID, i, start, end, len(e.Context))
		}
	}
	return nil
}

// SpanLabel is the labeling outcome for one window: either an answer span
// in token indices, or unanswerable for this window.
type SpanLabel struct {
	Start      int
	End        int
	Answerable bool
}

// Answered labels a window with an inclusive token span.
func Answered(start, end int) SpanLabel {
	return SpanLabel{Start: start, End: end, Answerable: true}
}

// Unanswerable labels a window that does not contain the answer.
func Unanswerable() SpanLabel {
	return SpanLabel{}
}

// Positions projects the label onto training positions: unanswerable
// windows collapse onto the sentinel index (the window's class token).
func (l SpanLabel) Positions(sentinel int) (start, end int) {
	if !l.Answerable {
		return sentinel, sentinel
	}
	return l.Start, l.End
}

// LabeledWindow is one window of a tokenized example together with its
// answer-span label and the sentinel position used for "no answer".
type LabeledWindow struct {
	tokenizer.Encoding

	Label    SpanLabel
	Sentinel int
}
