package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/metrics"
	"github.com/nordtext/scandibench/internal/qa"
)

// QADataset is an extractive question-answering benchmark in the ScandiQA
// style. Rows are SQuAD-shaped; the same examples feed the window preparer
// for encoder models and the prompt path for generative ones.
type QADataset struct {
	DatasetName string
	Lang        language.Language
	Path        string
	MaxExamples int
}

type qaRow struct {
	ID       string     `json:"id,omitempty"`
	Question string     `json:"question"`
	Context  string     `json:"context"`
	Answers  qa.Answers `json:"answers"`
}

func (d *QADataset) Name() string                { return d.DatasetName }
func (d *QADataset) Task() string                { return TaskQA }
func (d *QADataset) Language() language.Language { return d.Lang }

func (d *QADataset) Load(ctx context.Context) ([]Example, error) {
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}

	rows, err := readJSONL[qaRow](ctx, d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return takeFirstN(qaSample(), d.MaxExamples), nil
		}
		return nil, fmt.Errorf("dataset: load %q: %w", d.Path, err)
	}

	out := make([]Example, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		question := strings.TrimSpace(row.Question)
		if question == "" || row.Context == "" {
			continue
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = fmt.Sprintf("%s-%d", d.DatasetName, i+1)
		}

		out = append(out, Example{
			ID:       id,
			Text:     question,
			Context:  row.Context,
			Answers:  row.Answers,
		})
	}

	out = takeFirstN(out, d.MaxExamples)
	if len(out) == 0 {
		return takeFirstN(qaSample(), d.MaxExamples), nil
	}
	return out, nil
}

// RawExamples converts loaded examples into the preparer's input form.
func RawExamples(examples []Example) []qa.RawExample {
	out := make([]qa.RawExample, 0, len(examples))
	for _, ex := range examples {
		out = append(out, qa.RawExample{
			ID:       ex.ID,
			Question: ex.Text,
			Context:  ex.Context,
			Answers:  ex.Answers,
		})
	}
	return out
}

func (d *QADataset) Prompt(ex *Example) string {
	if ex == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Answer the question using only the text below. Reply with the shortest exact span from the text.\n\n")
	sb.WriteString(strings.TrimSpace(ex.Context))
	sb.WriteString("\n\nQuestion: ")
	sb.WriteString(strings.TrimSpace(ex.Text))
	sb.WriteByte('\n')
	return sb.String()
}

// Grade scores the response against every listed gold answer. Score carries
// the best token F1 and Exact whether any gold answer matched exactly; Gold
// keeps the first answer for reporting.
func (d *QADataset) Grade(response string, ex *Example) (*Graded, error) {
	if ex == nil {
		return nil, errors.New("dataset: nil example")
	}

	gold := ""
	if len(ex.Answers.Text) > 0 {
		gold = ex.Answers.Text[0]
	}
	return &Graded{
		Score:     metrics.AnswerF1(response, ex.Answers.Text),
		Exact:     metrics.ExactMatch(response, ex.Answers.Text),
		Predicted: strings.TrimSpace(response),
		Gold:      gold,
	}, nil
}

// Summarize reports the mean exact match and token F1 over graded examples.
// Examples that were never graded carry zero scores and drag both down.
func (d *QADataset) Summarize(graded []Graded) map[string]float64 {
	if len(graded) == 0 {
		return map[string]float64{"em": 0, "f1": 0}
	}

	var emSum, f1Sum float64
	for _, g := range graded {
		emSum += g.Exact
		f1Sum += g.Score
	}
	n := float64(len(graded))
	return map[string]float64{
		"em": emSum / n * 100,
		"f1": f1Sum / n * 100,
	}
}

func qaSample() []Example {
	return []Example{
		{
			ID:      "qa-sample-1",
			Text:    "Hvad er hovedstaden i Sverige?",
			Context: "Sveriges hovedstad er Stockholm. Byen ligger ved Østersøen.",
			Answers: qa.Answers{Text: []string{"Stockholm"}, Start: []int{22}},
		},
		{
			ID:      "qa-sample-2",
			Text:    "Hvilket hav ligger Stockholm ved?",
			Context: "Sveriges hovedstad er Stockholm. Byen ligger ved Østersøen.",
			Answers: qa.Answers{Text: []string{"Østersøen"}, Start: []int{49}},
		},
	}
}
