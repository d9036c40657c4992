package tokenizer

import (
	"errors"
	"fmt"

	"github.com/gomlx/go-huggingface/hub"
	"github.com/gomlx/go-huggingface/tokenizers"
	"github.com/gomlx/go-huggingface/tokenizers/api"
)

// Windowed adapts a base tokenizer into the PairTokenizer capability.
// Windows have the shape
//
//	[CLS] question [SEP] context-slice [SEP]
//
// and over-length contexts produce several windows overlapping by the
// configured stride.
type Windowed struct {
	base api.Tokenizer
}

// NewWindowed wraps a base tokenizer. The base must be able to annotate
// tokens with byte spans and know its class and end-of-sentence tokens.
// Post-processing on the base stays off; windows frame their own special
// tokens.
func NewWindowed(base api.Tokenizer) (*Windowed, error) {
	if base == nil {
		return nil, errors.New("tokenizer: nil base tokenizer")
	}
	if err := base.With(api.EncodeOptions{IncludeSpans: true}); err != nil {
		return nil, fmt.Errorf("tokenizer: base cannot report token spans: %w", err)
	}
	if _, err := base.SpecialTokenID(api.TokClassification); err != nil {
		return nil, fmt.Errorf("tokenizer: base has no class token: %w", err)
	}
	if _, err := base.SpecialTokenID(api.TokEndOfSentence); err != nil {
		return nil, fmt.Errorf("tokenizer: base has no separator token: %w", err)
	}
	return &Windowed{base: base}, nil
}

// FromHub loads the tokenizer of a hub repo and wraps it for pair encoding.
func FromHub(repo *hub.Repo) (*Windowed, error) {
	if repo == nil {
		return nil, errors.New("tokenizer: nil repo")
	}
	tok, err := tokenizers.New(repo)
	if err != nil {
		return nil, fmt.Errorf("tokenizer: load from hub: %w", err)
	}
	return NewWindowed(tok)
}

func (w *Windowed) ClassTokenID() (int, error) {
	if w == nil || w.base == nil {
		return 0, errors.New("tokenizer: nil tokenizer")
	}
	return w.base.SpecialTokenID(api.TokClassification)
}

func (w *Windowed) Decode(ids []int) string {
	if w == nil || w.base == nil {
		return ""
	}
	return w.base.Decode(ids)
}

// encode annotates one text segment, requiring a span per token.
func (w *Windowed) encode(text string) (api.AnnotatedEncoding, error) {
	enc := w.base.EncodeWithAnnotations(text)
	if len(enc.Spans) != len(enc.IDs) {
		return enc, fmt.Errorf("tokenizer: base returned %d spans for %d tokens", len(enc.Spans), len(enc.IDs))
	}
	return enc, nil
}

func (w *Windowed) EncodePairs(questions, contexts []string, opts PairOptions) ([]Encoding, error) {
	if w == nil || w.base == nil {
		return nil, errors.New("tokenizer: nil tokenizer")
	}
	if len(questions) != len(contexts) {
		return nil, fmt.Errorf("tokenizer: %d questions vs %d contexts", len(questions), len(contexts))
	}
	if opts.MaxLength <= 0 {
		return nil, errors.New("tokenizer: max length must be positive")
	}
	if opts.Stride < 0 {
		return nil, errors.New("tokenizer: negative stride")
	}

	cls, err := w.base.SpecialTokenID(api.TokClassification)
	if err != nil {
		return nil, err
	}
	sep, err := w.base.SpecialTokenID(api.TokEndOfSentence)
	if err != nil {
		return nil, err
	}

	var out []Encoding
	for i := range questions {
		q, err := w.encode(questions[i])
		if err != nil {
			return nil, err
		}
		c, err := w.encode(contexts[i])
		if err != nil {
			return nil, err
		}

		// Three special tokens frame the pair: CLS, and a SEP after
		// each segment.
		budget := opts.MaxLength - len(q.IDs) - 3
		if budget <= 0 {
			return nil, fmt.Errorf("%w: question has %d tokens, max length %d",
				ErrQuestionTooLong, len(q.IDs), opts.MaxLength)
		}
		if opts.Stride >= budget {
			return nil, fmt.Errorf("%w: stride %d, context budget %d",
				ErrStrideTooLarge, opts.Stride, budget)
		}

		for _, win := range windowRanges(len(c.IDs), budget, opts.Stride) {
			out = append(out, buildWindow(cls, sep, &q, &c, win, i))
		}
	}
	return out, nil
}

type windowRange struct{ start, end int }

// windowRanges slices n context tokens into windows of at most budget
// tokens, consecutive windows sharing stride tokens. An empty context still
// yields one (empty) window.
func windowRanges(n, budget, stride int) []windowRange {
	if n <= 0 {
		return []windowRange{{0, 0}}
	}

	var out []windowRange
	start := 0
	for {
		end := start + budget
		if end > n {
			end = n
		}
		out = append(out, windowRange{start, end})
		if end == n {
			return out
		}
		start = end - stride
	}
}

func buildWindow(cls, sep int, q, c *api.AnnotatedEncoding, win windowRange, sample int) Encoding {
	size := 3 + len(q.IDs) + (win.end - win.start)
	enc := Encoding{
		IDs:           make([]int, 0, size),
		AttentionMask: make([]int, 0, size),
		Offsets:       make([]Span, 0, size),
		SequenceIDs:   make([]int, 0, size),
		SampleIndex:   sample,
	}

	push := func(id int, off Span, seq int) {
		enc.IDs = append(enc.IDs, id)
		enc.AttentionMask = append(enc.AttentionMask, 1)
		enc.Offsets = append(enc.Offsets, off)
		enc.SequenceIDs = append(enc.SequenceIDs, seq)
	}

	push(cls, Span{}, SeqSpecial)
	for i, id := range q.IDs {
		push(id, Span{Start: q.Spans[i].Start, End: q.Spans[i].End}, SeqQuestion)
	}
	push(sep, Span{}, SeqSpecial)
	for i := win.start; i < win.end; i++ {
		push(c.IDs[i], Span{Start: c.Spans[i].Start, End: c.Spans[i].End}, SeqContext)
	}
	push(sep, Span{}, SeqSpecial)

	return enc
}
