// Package runner drives a benchmark: load the dataset, prompt the model,
// grade the responses and persist the summary.
package runner

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nordtext/scandibench/internal/dataset"
	"github.com/nordtext/scandibench/internal/leaderboard"
	"github.com/nordtext/scandibench/internal/llm"
)

type Runner struct {
	Provider llm.Provider
	Store    *leaderboard.Store

	// Model overrides the reported model name. Defaults to the provider name.
	Model string
	// MaxTokens caps each completion. Defaults to 256.
	MaxTokens int
	// RaiseErrors turns per-example provider failures into run failures.
	RaiseErrors bool
}

type Result struct {
	RunID       string
	Model       string
	Dataset     string
	Task        string
	Language    string
	Score       float64
	Metrics     map[string]float64
	TotalTime   time.Duration
	TotalTokens int
	Examples    []ExampleResult
}

type ExampleResult struct {
	ID       string
	Score    float64
	Response string
	Latency  time.Duration
	Tokens   int
	Error    string
}

// Run benchmarks the provider on one dataset. The returned result is also
// saved to the store when one is configured. A canceled context returns the
// partial result together with the context error.
func (r *Runner) Run(ctx context.Context, ds dataset.Dataset) (*Result, error) {
	if r == nil {
		return nil, errors.New("runner: nil runner")
	}
	if ctx == nil {
		return nil, errors.New("runner: nil context")
	}
	if r.Provider == nil {
		return nil, errors.New("runner: nil provider")
	}
	if ds == nil {
		return nil, errors.New("runner: nil dataset")
	}

	start := time.Now()

	examples, err := ds.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(examples) == 0 {
		return nil, errors.New("runner: empty dataset")
	}

	model := strings.TrimSpace(r.Model)
	if model == "" {
		model = strings.TrimSpace(r.Provider.Name())
	}
	maxTokens := r.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 256
	}

	out := &Result{
		RunID:    uuid.NewString(),
		Model:    model,
		Dataset:  strings.TrimSpace(ds.Name()),
		Task:     ds.Task(),
		Language: ds.Language().Code,
		Examples: make([]ExampleResult, 0, len(examples)),
	}

	var graded []dataset.Graded
	totalTokens := 0

	for i := range examples {
		ex := &examples[i]
		if err := ctx.Err(); err != nil {
			r.finish(out, graded, ds, start, totalTokens)
			return out, err
		}

		req := &llm.Request{
			Prompt:      ds.Prompt(ex),
			MaxTokens:   maxTokens,
			Temperature: 0,
		}

		callStart := time.Now()
		res, callErr := r.Provider.Complete(ctx, req)
		latency := time.Since(callStart)

		er := ExampleResult{ID: strings.TrimSpace(ex.ID), Latency: latency}

		var response string
		if res != nil {
			response = res.Text
			er.Response = strings.TrimSpace(response)
			er.Tokens = res.Usage.InputTokens + res.Usage.OutputTokens
			totalTokens += er.Tokens
		}
		if callErr != nil {
			if r.RaiseErrors {
				return nil, callErr
			}
			er.Error = callErr.Error()
			out.Examples = append(out.Examples, er)
			graded = append(graded, dataset.Graded{Gold: goldOf(ex)})
			continue
		}

		g, gradeErr := ds.Grade(response, ex)
		if gradeErr != nil {
			if r.RaiseErrors {
				return nil, gradeErr
			}
			er.Error = gradeErr.Error()
			g = &dataset.Graded{Gold: goldOf(ex)}
		}
		er.Score = g.Score
		graded = append(graded, *g)
		out.Examples = append(out.Examples, er)
	}

	r.finish(out, graded, ds, start, totalTokens)

	if r.Store != nil {
		entry := &leaderboard.Entry{
			RunID:    out.RunID,
			Model:    out.Model,
			Provider: strings.TrimSpace(r.Provider.Name()),
			Dataset:  out.Dataset,
			Task:     out.Task,
			Language: out.Language,
			Score:    out.Score,
			Metrics:  out.Metrics,
			Latency:  avgLatencyMs(out.Examples),
		}
		if err := r.Store.Save(ctx, entry); err != nil {
			return out, err
		}
	}
	return out, nil
}

func (r *Runner) finish(out *Result, graded []dataset.Graded, ds dataset.Dataset, start time.Time, totalTokens int) {
	out.TotalTime = time.Since(start)
	out.TotalTokens = totalTokens
	out.Metrics = ds.Summarize(graded)
	out.Score = primaryMetric(ds.Task(), out.Metrics)
}

// goldOf is the reference answer recorded for an example that was never
// graded, e.g. after a failed provider call. Extractive examples keep their
// gold in the answer list rather than the label.
func goldOf(ex *dataset.Example) string {
	if len(ex.Answers.Text) > 0 {
		return ex.Answers.Text[0]
	}
	return ex.Label
}

// primaryMetric picks the headline score for a task from its summary.
func primaryMetric(task string, m map[string]float64) float64 {
	switch task {
	case dataset.TaskSentiment:
		return m["macro_f1"]
	case dataset.TaskQA:
		return m["f1"]
	default:
		return m["accuracy"]
	}
}

func avgLatencyMs(examples []ExampleResult) int64 {
	if len(examples) == 0 {
		return 0
	}
	var sum time.Duration
	for _, e := range examples {
		sum += e.Latency
	}
	return (sum / time.Duration(len(examples))).Milliseconds()
}
