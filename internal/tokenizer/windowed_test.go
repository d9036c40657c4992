package tokenizer

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gomlx/go-huggingface/tokenizers/api"
)

// wordTokenizer is a whitespace tokenizer with byte spans, used in place of
// a hub-loaded tokenizer.
type wordTokenizer struct {
	vocab   map[string]int
	words   []string
	options api.EncodeOptions
}

const (
	wordCLS = 0
	wordSEP = 1
)

func newWordTokenizer() *wordTokenizer {
	return &wordTokenizer{
		vocab: map[string]int{"[CLS]": wordCLS, "[SEP]": wordSEP},
		words: []string{"[CLS]", "[SEP]"},
	}
}

func (t *wordTokenizer) id(word string) int {
	if id, ok := t.vocab[word]; ok {
		return id
	}
	id := len(t.words)
	t.vocab[word] = id
	t.words = append(t.words, word)
	return id
}

func (t *wordTokenizer) With(options api.EncodeOptions) error {
	t.options = options
	return nil
}

func (t *wordTokenizer) Encode(text string) []int {
	return t.encode(text).IDs
}

func (t *wordTokenizer) EncodeWithAnnotations(text string) api.AnnotatedEncoding {
	res := t.encode(text)
	if !t.options.IncludeSpans {
		res.Spans = nil
	}
	return res
}

func (t *wordTokenizer) encode(text string) api.AnnotatedEncoding {
	var res api.AnnotatedEncoding
	pos := 0
	for pos < len(text) {
		if text[pos] == ' ' {
			pos++
			continue
		}
		end := pos
		for end < len(text) && text[end] != ' ' {
			end++
		}
		res.IDs = append(res.IDs, t.id(text[pos:end]))
		res.Spans = append(res.Spans, api.TokenSpan{Start: pos, End: end})
		pos = end
	}
	return res
}

func (t *wordTokenizer) Decode(ids []int) string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == wordCLS || id == wordSEP {
			continue
		}
		if id >= 0 && id < len(t.words) {
			out = append(out, t.words[id])
		}
	}
	return strings.Join(out, " ")
}

func (t *wordTokenizer) SpecialTokenID(tok api.SpecialToken) (int, error) {
	switch tok {
	case api.TokClassification:
		return wordCLS, nil
	case api.TokEndOfSentence:
		return wordSEP, nil
	default:
		return 0, fmt.Errorf("special token %v: %w", tok, api.ErrNotImplemented)
	}
}

func (t *wordTokenizer) Normalize(text string) string { return text }
func (t *wordTokenizer) VocabSize() int               { return len(t.words) }
func (t *wordTokenizer) Config() *api.Config          { return nil }

// spanlessTokenizer rejects the span annotation option, like a base whose
// backend cannot track byte positions.
type spanlessTokenizer struct {
	*wordTokenizer
}

func (t *spanlessTokenizer) With(options api.EncodeOptions) error {
	if options.IncludeSpans {
		return api.ErrNotImplemented
	}
	return t.wordTokenizer.With(options)
}

func mustWindowed(t *testing.T) *Windowed {
	t.Helper()
	w, err := NewWindowed(newWordTokenizer())
	if err != nil {
		t.Fatalf("NewWindowed: %v", err)
	}
	return w
}

func TestNewWindowed_RequiresSpans(t *testing.T) {
	_, err := NewWindowed(&spanlessTokenizer{newWordTokenizer()})
	if err == nil {
		t.Fatal("expected error for a base without span support")
	}
	if !errors.Is(err, api.ErrNotImplemented) {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestEncodePairs_SingleWindow(t *testing.T) {
	w := mustWindowed(t)

	encs, err := w.EncodePairs(
		[]string{"Hvad er hovedstaden i Sverige?"},
		[]string{"Sveriges hovedstad er Stockholm."},
		PairOptions{MaxLength: 64, Stride: 4},
	)
	if err != nil {
		t.Fatalf("EncodePairs: %v", err)
	}
	if len(encs) != 1 {
		t.Fatalf("windows: got %d want 1", len(encs))
	}

	enc := encs[0]
	if enc.SampleIndex != 0 {
		t.Fatalf("sample index: got %d", enc.SampleIndex)
	}
	if enc.SequenceIDs[0] != SeqSpecial {
		t.Fatalf("first token should be special, got seq %d", enc.SequenceIDs[0])
	}
	if len(enc.IDs) != len(enc.Offsets) || len(enc.IDs) != len(enc.SequenceIDs) || len(enc.IDs) != len(enc.AttentionMask) {
		t.Fatalf("misaligned encoding: ids=%d offsets=%d seq=%d mask=%d",
			len(enc.IDs), len(enc.Offsets), len(enc.SequenceIDs), len(enc.AttentionMask))
	}

	first, last, ok := enc.ContextBounds()
	if !ok {
		t.Fatal("expected context tokens")
	}
	if enc.Offsets[first].Start != 0 {
		t.Fatalf("context should start at offset 0, got %d", enc.Offsets[first].Start)
	}
	if got := enc.Offsets[last].End; got != len("Sveriges hovedstad er Stockholm.") {
		t.Fatalf("context end offset: got %d", got)
	}
}

func TestEncodePairs_OverflowWindows(t *testing.T) {
	w := mustWindowed(t)

	question := "Hvad er hovedstaden i Sverige?"
	context := strings.TrimSpace(strings.Repeat("Sveriges hovedstad er Stockholm. ", 40))

	const (
		maxLength = 32
		stride    = 8
	)
	encs, err := w.EncodePairs([]string{question}, []string{context}, PairOptions{MaxLength: maxLength, Stride: stride})
	if err != nil {
		t.Fatalf("EncodePairs: %v", err)
	}
	if len(encs) < 2 {
		t.Fatalf("windows: got %d want several", len(encs))
	}

	// 4*40 context tokens against a budget of maxLength - 5 question
	// tokens - 3 specials = 24, advancing 24-8 tokens per window.
	budget := maxLength - 5 - 3
	wantWindows := 1 + ceilDiv(4*40-budget, budget-stride)
	if len(encs) != wantWindows {
		t.Fatalf("windows: got %d want %d", len(encs), wantWindows)
	}

	for i, enc := range encs {
		if enc.SampleIndex != 0 {
			t.Fatalf("window %d: sample index %d", i, enc.SampleIndex)
		}
		if len(enc.IDs) > maxLength {
			t.Fatalf("window %d: %d tokens exceeds max length", i, len(enc.IDs))
		}
	}

	// Consecutive windows overlap by exactly stride tokens.
	for i := 1; i < len(encs); i++ {
		prevFirst, prevLast, _ := encs[i-1].ContextBounds()
		curFirst, _, _ := encs[i].ContextBounds()
		prevLen := prevLast - prevFirst + 1

		overlap := 0
		for j := 0; j < stride && j < prevLen; j++ {
			if encs[i].IDs[curFirst+j] == encs[i-1].IDs[prevLast-stride+1+j] {
				overlap++
			}
		}
		if overlap != stride {
			t.Fatalf("window %d: overlap %d want %d", i, overlap, stride)
		}
	}
}

func TestEncodePairs_QuestionTooLong(t *testing.T) {
	w := mustWindowed(t)

	long := strings.TrimSpace(strings.Repeat("ord ", 30))
	_, err := w.EncodePairs([]string{long}, []string{"kort kontekst"}, PairOptions{MaxLength: 16, Stride: 2})
	if err == nil {
		t.Fatal("expected error for over-long question")
	}
}

func TestEncodePairs_StrideTooLarge(t *testing.T) {
	w := mustWindowed(t)

	_, err := w.EncodePairs([]string{"et to"}, []string{"tre fire"}, PairOptions{MaxLength: 10, Stride: 9})
	if err == nil {
		t.Fatal("expected error for stride >= budget")
	}
}

func TestEncodePairs_LengthMismatch(t *testing.T) {
	w := mustWindowed(t)

	_, err := w.EncodePairs([]string{"a", "b"}, []string{"c"}, PairOptions{MaxLength: 32, Stride: 4})
	if err == nil {
		t.Fatal("expected error for mismatched batch")
	}
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
