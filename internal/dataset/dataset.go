// Package dataset defines the benchmark datasets and how their examples are
// prompted and graded.
package dataset

import (
	"context"
	"strings"

	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/qa"
)

// Supertasks the datasets map onto.
const (
	TaskSentiment      = "sentiment-classification"
	TaskMultipleChoice = "multiple-choice"
	TaskQA             = "question-answering"
)

// Example is one benchmark example. Text carries the document or question;
// the other fields are task-specific.
type Example struct {
	ID       string
	Text     string
	Context  string
	Choices  []string
	Label    string
	Answers  qa.Answers
	Category string
}

// Graded is the outcome of grading one model response. Exact is set by
// extractive tasks with several gold answers; classification tasks leave it
// zero and compare Predicted against Gold instead.
type Graded struct {
	Score     float64
	Exact     float64
	Predicted string
	Gold      string
}

// Dataset is one benchmark dataset. Load returns the evaluation examples;
// Prompt and Grade turn an example into a provider request and its response
// into a score; Summarize aggregates graded examples into named metrics.
type Dataset interface {
	Name() string
	Task() string
	Language() language.Language
	Load(ctx context.Context) ([]Example, error)
	Prompt(ex *Example) string
	Grade(response string, ex *Example) (*Graded, error)
	Summarize(graded []Graded) map[string]float64
}

func takeFirstN[T any](in []T, n int) []T {
	if n <= 0 || n >= len(in) {
		return in
	}
	out := make([]T, 0, n)
	return append(out, in[:n]...)
}

func compactStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}
