package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/metrics"
)

// sentimentSynonyms maps model-facing label spellings across the covered
// languages onto the three canonical labels.
var sentimentSynonyms = map[string]string{
	"negative": "negative",
	"negativ":  "negative",
	"neikvætt": "negative",
	"label_0":  "negative",
	"0":        "negative",

	"neutral":  "neutral",
	"nøytral":  "neutral",
	"neutralt": "neutral",
	"hlutlaus": "neutral",
	"label_1":  "neutral",
	"1":        "neutral",

	"positive": "positive",
	"positiv":  "positive",
	"jákvætt":  "positive",
	"label_2":  "positive",
	"2":        "positive",
}

// SentimentDataset is a three-class document sentiment benchmark in the
// NoReC style.
type SentimentDataset struct {
	DatasetName string
	Lang        language.Language
	Path        string
	MaxExamples int
}

type sentimentRow struct {
	ID    string `json:"id,omitempty"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

func (d *SentimentDataset) Name() string                { return d.DatasetName }
func (d *SentimentDataset) Task() string                { return TaskSentiment }
func (d *SentimentDataset) Language() language.Language { return d.Lang }

func (d *SentimentDataset) Load(ctx context.Context) ([]Example, error) {
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}

	rows, err := readJSONL[sentimentRow](ctx, d.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return takeFirstN(sentimentSample(), d.MaxExamples), nil
		}
		return nil, fmt.Errorf("dataset: load %q: %w", d.Path, err)
	}

	out := make([]Example, 0, len(rows))
	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return out, err
		}

		text := strings.TrimSpace(row.Text)
		label, ok := CanonicalSentiment(row.Label)
		if text == "" || !ok {
			continue
		}

		id := strings.TrimSpace(row.ID)
		if id == "" {
			id = fmt.Sprintf("%s-%d", d.DatasetName, i+1)
		}

		out = append(out, Example{ID: id, Text: text, Label: label})
	}

	out = takeFirstN(out, d.MaxExamples)
	if len(out) == 0 {
		return takeFirstN(sentimentSample(), d.MaxExamples), nil
	}
	return out, nil
}

func (d *SentimentDataset) Prompt(ex *Example) string {
	if ex == nil {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Classify the sentiment of the following document as negative, neutral or positive.\n\n")
	sb.WriteString(strings.TrimSpace(ex.Text))
	sb.WriteString("\n\nReply with a single word.\n")
	return sb.String()
}

func (d *SentimentDataset) Grade(response string, ex *Example) (*Graded, error) {
	if ex == nil {
		return nil, errors.New("dataset: nil example")
	}

	pred, ok := extractSentiment(response)
	if !ok {
		return &Graded{Predicted: "", Gold: ex.Label}, nil
	}

	g := &Graded{Predicted: pred, Gold: ex.Label}
	if pred == ex.Label {
		g.Score = 1
	}
	return g, nil
}

func (d *SentimentDataset) Summarize(graded []Graded) map[string]float64 {
	preds := make([]string, len(graded))
	golds := make([]string, len(graded))
	for i, g := range graded {
		preds[i] = g.Predicted
		golds[i] = g.Gold
	}
	return map[string]float64{
		"accuracy": metrics.Accuracy(preds, golds) * 100,
		"macro_f1": metrics.MacroF1(preds, golds) * 100,
		"mcc":      metrics.MatthewsCorrCoef(preds, golds) * 100,
	}
}

// CanonicalSentiment normalizes a label spelling in any covered language to
// one of negative, neutral or positive.
func CanonicalSentiment(label string) (string, bool) {
	canon, ok := sentimentSynonyms[strings.ToLower(strings.TrimSpace(label))]
	return canon, ok
}

// extractSentiment scans the response for the first word that resolves to a
// canonical label.
func extractSentiment(response string) (string, bool) {
	for _, field := range strings.Fields(response) {
		field = strings.Trim(field, ".,;:!?\"'()")
		if canon, ok := CanonicalSentiment(field); ok {
			return canon, true
		}
	}
	return "", false
}

func sentimentSample() []Example {
	return []Example{
		{ID: "sentiment-sample-1", Text: "Filmen var en fantastisk oplevelse fra start til slut.", Label: "positive"},
		{ID: "sentiment-sample-2", Text: "Maden var hverken god eller dårlig.", Label: "neutral"},
		{ID: "sentiment-sample-3", Text: "Servicen var elendig og vi fik aldrig vores mad.", Label: "negative"},
	}
}
