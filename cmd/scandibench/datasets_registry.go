package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/nordtext/scandibench/internal/dataset"
	"github.com/nordtext/scandibench/internal/language"
)

const defaultDataDir = "data"

type datasetSpec struct {
	name string
	task string
	lang string
}

// knownDatasets are the built-in benchmark datasets. Each loads from
// data/<name>.jsonl and falls back to its embedded sample when the file is
// missing.
var knownDatasets = []datasetSpec{
	{name: "angry-tweets", task: dataset.TaskSentiment, lang: "da"},
	{name: "norec", task: dataset.TaskSentiment, lang: "no"},
	{name: "absabank-imm", task: dataset.TaskSentiment, lang: "sv"},
	{name: "mmlu-da", task: dataset.TaskMultipleChoice, lang: "da"},
	{name: "mmlu-sv", task: dataset.TaskMultipleChoice, lang: "sv"},
	{name: "scandiqa-da", task: dataset.TaskQA, lang: "da"},
	{name: "scandiqa-sv", task: dataset.TaskQA, lang: "sv"},
	{name: "nqii", task: dataset.TaskQA, lang: "is"},
}

func resolveDataset(name, dataPath string, maxExamples int) (dataset.Dataset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("benchmark: missing --dataset (%s)", datasetNames())
	}

	var spec *datasetSpec
	for i := range knownDatasets {
		if knownDatasets[i].name == name {
			spec = &knownDatasets[i]
			break
		}
	}
	if spec == nil {
		return nil, fmt.Errorf("benchmark: unknown dataset %q (expected %s)", name, datasetNames())
	}

	lang, _ := language.Get(spec.lang)
	path := strings.TrimSpace(dataPath)
	if path == "" {
		path = filepath.Join(defaultDataDir, spec.name+".jsonl")
	}

	switch spec.task {
	case dataset.TaskSentiment:
		return &dataset.SentimentDataset{
			DatasetName: spec.name, Lang: lang, Path: path, MaxExamples: maxExamples,
		}, nil
	case dataset.TaskMultipleChoice:
		return &dataset.MCQDataset{
			DatasetName: spec.name, Lang: lang, Path: path, MaxExamples: maxExamples,
		}, nil
	case dataset.TaskQA:
		return &dataset.QADataset{
			DatasetName: spec.name, Lang: lang, Path: path, MaxExamples: maxExamples,
		}, nil
	default:
		return nil, fmt.Errorf("benchmark: dataset %q has unknown task %q", name, spec.task)
	}
}

func datasetNames() string {
	names := make([]string, 0, len(knownDatasets))
	for _, d := range knownDatasets {
		names = append(names, d.name)
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}
