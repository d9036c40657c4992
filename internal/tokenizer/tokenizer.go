// Package tokenizer provides the pair-tokenization capability used by the
// question-answering example preparer: joint (question, context) encoding
// with context-only truncation, stride-based overflow windows, per-token
// character offsets and overflow-to-sample mapping.
package tokenizer

import "errors"

// Span is the character range in the source text that produced a token.
// Special tokens carry the zero Span.
type Span struct {
	Start int
	End   int
}

// Sequence tags for each token position in an Encoding.
const (
	SeqSpecial  = -1
	SeqQuestion = 0
	SeqContext  = 1
)

// Encoding is one window of a tokenized (question, context) pair.
type Encoding struct {
	// IDs are the token ids, including special tokens.
	IDs []int

	// AttentionMask is 1 for every real position.
	AttentionMask []int

	// Offsets maps each token to its character span in the question or
	// context text it came from. Zero for special tokens.
	Offsets []Span

	// SequenceIDs tags each position as SeqSpecial, SeqQuestion or
	// SeqContext.
	SequenceIDs []int

	// SampleIndex is the index of the originating example in the input
	// batch; one example may produce several windows.
	SampleIndex int
}

// ContextBounds returns the index range [first, last] of context tokens in
// the encoding, or ok=false if the window holds no context tokens.
func (e *Encoding) ContextBounds() (first, last int, ok bool) {
	first, last = -1, -1
	for i, seq := range e.SequenceIDs {
		if seq != SeqContext {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	return first, last, first >= 0
}

// PairOptions controls windowing during pair encoding.
type PairOptions struct {
	// MaxLength is the maximum number of tokens per window, special
	// tokens included.
	MaxLength int

	// Stride is the number of context tokens shared between consecutive
	// windows, so an answer near a window boundary still appears whole in
	// at least one window.
	Stride int
}

// PairTokenizer is the tokenizer capability consumed by the example
// preparer.
type PairTokenizer interface {
	// EncodePairs tokenizes each (question, context) pair, truncating only
	// the context and splitting over-length contexts into overlapping
	// windows. len(questions) must equal len(contexts).
	EncodePairs(questions, contexts []string, opts PairOptions) ([]Encoding, error)

	// Decode renders token ids back to text.
	Decode(ids []int) string

	// ClassTokenID returns the id of the class token that opens every
	// window; its position doubles as the "no answer" sentinel.
	ClassTokenID() (int, error)
}

var (
	ErrQuestionTooLong = errors.New("tokenizer: question leaves no room for context")
	ErrStrideTooLarge  = errors.New("tokenizer: stride must be smaller than the context budget")
)
