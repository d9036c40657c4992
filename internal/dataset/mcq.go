package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/metrics"
)

// choicesWord is the per-language header above the lettered options.
var choicesWord = map[string]string{
	"da": "Svarmuligheder",
	"sv": "Svarsalternativ",
	"no": "Svaralternativer",
	"nb": "Svaralternativer",
	"nn": "Svaralternativ",
	"is": "Svarmöguleikar",
	"de": "Antwortmöglichkeiten",
	"nl": "Antwoordopties",
	"en": "Choices",
}

// MCQDataset is a multiple-choice benchmark in the MMLU-mini style.
type MCQDataset struct {
	DatasetName string
	Lang        language.Language
	Path        string
	Categories  []string
	MaxExamples int
}

type mcqRow struct {
	ID       string   `json:"id,omitempty"`
	Question string   `json:"question"`
	Choices  []string `json:"choices"`
	Answer   any      `json:"answer"`
	Category string   `json:"category,omitempty"`
}

func (d *MCQDataset) Name() string                { return d.DatasetName }
func (d *MCQDataset) Task() string                { return TaskMultipleChoice }
func (d *MCQDataset) Language() language.Language { return d.Lang }

func (d *MCQDataset) Load(ctx context.Context) ([]Example, error) {
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}

	rows, err := readJSONL[mcqRow](ctx, d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return takeFirstN(mcqSample(), d.MaxExamples), nil
		}
		return nil, fmt.Errorf("dataset: load %q: %w", d.Path, err)
	}

	categorySet := normalizeStringSet(d.Categories)
	out := make([]Example, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		category := strings.TrimSpace(row.Category)
		if len(categorySet) > 0 && !categorySet[strings.ToLower(category)] {
			continue
		}

		question := strings.TrimSpace(row.Question)
		choices := compactStrings(row.Choices)
		if question == "" || len(choices) == 0 {
			continue
		}

		idx, err := expectedChoiceIndex(row.Answer, choices)
		if err != nil {
			continue
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = fmt.Sprintf("%s-%d", d.DatasetName, i+1)
		}

		out = append(out, Example{
			ID:       id,
			Text:     question,
			Choices:  choices,
			Label:    string(rune('a' + idx)),
			Category: category,
		})
	}

	out = takeFirstN(out, d.MaxExamples)
	if len(out) == 0 {
		return takeFirstN(mcqSample(), d.MaxExamples), nil
	}
	return out, nil
}

func (d *MCQDataset) Prompt(ex *Example) string {
	if ex == nil {
		return ""
	}
	return FormatMCQText(ex.Text, ex.Choices, d.Lang.Code) +
		"\n\nReply with just the letter (e.g., a).\n"
}

func (d *MCQDataset) Grade(response string, ex *Example) (*Graded, error) {
	if ex == nil {
		return nil, errors.New("dataset: nil example")
	}
	if len(ex.Label) != 1 {
		return nil, fmt.Errorf("dataset: example %q has bad label %q", ex.ID, ex.Label)
	}

	g := &Graded{Gold: ex.Label}
	idx, ok := parseMCQResponse(response, ex.Choices)
	if !ok {
		return g, nil
	}
	g.Predicted = string(rune('a' + idx))
	if g.Predicted == g.Gold {
		g.Score = 1
	}
	return g, nil
}

func (d *MCQDataset) Summarize(graded []Graded) map[string]float64 {
	preds := make([]string, len(graded))
	golds := make([]string, len(graded))
	for i, g := range graded {
		preds[i] = g.Predicted
		golds[i] = g.Gold
	}
	return map[string]float64{
		"accuracy": metrics.Accuracy(preds, golds) * 100,
	}
}

// FormatMCQText renders a question with its language-specific choices header
// and lettered options.
func FormatMCQText(question string, choices []string, langCode string) string {
	header, ok := choicesWord[strings.ToLower(strings.TrimSpace(langCode))]
	if !ok {
		header = choicesWord["en"]
	}

	var sb strings.Builder
	sb.WriteString(strings.ReplaceAll(strings.TrimSpace(question), "\n", " "))
	sb.WriteByte('\n')
	sb.WriteString(header)
	sb.WriteString(":\n")
	for i, c := range choices {
		sb.WriteString(string(rune('a' + i)))
		sb.WriteString(". ")
		sb.WriteString(strings.ReplaceAll(strings.TrimSpace(c), "\n", " "))
		if i < len(choices)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// expectedChoiceIndex resolves a gold answer given as index, letter or full
// choice text to a zero-based choice index.
func expectedChoiceIndex(answer any, choices []string) (int, error) {
	max := len(choices)
	if max > 26 {
		max = 26
	}

	switch v := answer.(type) {
	case int:
		return normalizeIndex(v, max)
	case int64:
		return normalizeIndex(int(v), max)
	case float64:
		return normalizeIndex(int(v), max)
	case string:
		return parseExpectedString(v, choices, max)
	default:
		return -1, fmt.Errorf("dataset: unsupported expected answer type %T", answer)
	}
}

func normalizeIndex(idx int, max int) (int, error) {
	switch {
	case idx >= 0 && idx < max:
		return idx, nil
	case idx >= 1 && idx <= max:
		return idx - 1, nil
	default:
		return -1, fmt.Errorf("dataset: expected answer out of range (got %d, max %d)", idx, max)
	}
}

func parseExpectedString(s string, choices []string, max int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1, errors.New("dataset: empty expected answer")
	}

	if len(s) == 1 {
		c := s[0]
		if c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		if c >= 'A' && c <= 'Z' {
			idx := int(c - 'A')
			if idx >= 0 && idx < max {
				return idx, nil
			}
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		return normalizeIndex(n, max)
	}

	needle := strings.ToLower(s)
	for i, c := range choices {
		if strings.ToLower(strings.TrimSpace(c)) == needle && i < max {
			return i, nil
		}
	}

	return -1, fmt.Errorf("dataset: could not parse expected answer %q", s)
}

// parseMCQResponse extracts the chosen option from a model response, trying
// a standalone letter, a number, then the choice text itself.
func parseMCQResponse(response string, choices []string) (int, bool) {
	s := strings.TrimSpace(response)
	if s == "" {
		return -1, false
	}

	max := len(choices)
	if max <= 0 {
		max = 4
	}
	if max > 26 {
		max = 26
	}

	if idx, ok := extractLetterToken(s, max); ok {
		return idx, true
	}
	if idx, ok := extractNumberToken(s, max); ok {
		return idx, true
	}
	if idx, ok := matchChoiceText(s, choices, max); ok {
		return idx, true
	}
	return -1, false
}

func extractLetterToken(s string, max int) (int, bool) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'a' && c <= 'z' {
			c = c - 'a' + 'A'
		}
		if c < 'A' || c > 'Z' {
			continue
		}
		idx := int(c - 'A')
		if idx < 0 || idx >= max {
			continue
		}

		prevOK := i == 0 || !isAlphaNum(s[i-1])
		nextOK := i+1 == len(s) || !isAlphaNum(s[i+1])
		if prevOK && nextOK {
			return idx, true
		}
	}
	return -1, false
}

func extractNumberToken(s string, max int) (int, bool) {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			continue
		}
		j := i
		for j < len(s) && s[j] >= '0' && s[j] <= '9' {
			j++
		}
		n, err := strconv.Atoi(s[i:j])
		if err != nil {
			continue
		}
		if n >= 1 && n <= max {
			return n - 1, true
		}
		if n >= 0 && n < max {
			return n, true
		}
		i = j - 1
	}
	return -1, false
}

func matchChoiceText(s string, choices []string, max int) (int, bool) {
	if len(choices) == 0 {
		return -1, false
	}
	ls := strings.ToLower(s)
	for i, c := range choices {
		if i >= max {
			return -1, false
		}
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			continue
		}
		if strings.Contains(ls, c) {
			return i, true
		}
	}
	return -1, false
}

func isAlphaNum(b byte) bool {
	return (b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func normalizeStringSet(in []string) map[string]bool {
	out := make(map[string]bool)
	for _, s := range in {
		v := strings.ToLower(strings.TrimSpace(s))
		if v == "" {
			continue
		}
		out[v] = true
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func mcqSample() []Example {
	return []Example{
		{
			ID:       "mcq-sample-1",
			Category: "geografi",
			Text:     "Hvad er hovedstaden i Sverige?",
			Choices:  []string{"Oslo", "Stockholm", "København", "Helsinki"},
			Label:    "b",
		},
		{
			ID:       "mcq-sample-2",
			Category: "matematik",
			Text:     "Hvad er 7 * 6?",
			Choices:  []string{"36", "40", "42", "48"},
			Label:    "c",
		},
		{
			ID:       "mcq-sample-3",
			Category: "naturvidenskab",
			Text:     "Ved hvilken temperatur koger vand ved havniveau (Celsius)?",
			Choices:  []string{"50", "75", "100", "125"},
			Label:    "c",
		},
	}
}
