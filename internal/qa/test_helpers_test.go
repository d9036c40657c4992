package qa

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gomlx/go-huggingface/tokenizers/api"

	"github.com/nordtext/scandibench/internal/tokenizer"
)

// wordTokenizer splits on spaces and tracks byte spans, standing in for a
// hub-loaded tokenizer in tests.
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

func newTestTokenizer(t *testing.T) tokenizer.PairTokenizer {
	t.Helper()
	w, err := tokenizer.NewWindowed(newWordTokenizer())
	if err != nil {
		t.Fatalf("NewWindowed: %v", err)
	}
	return w
}
