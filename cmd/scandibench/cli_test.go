package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nordtext/scandibench/internal/dataset"
	"github.com/nordtext/scandibench/internal/models"
)

func TestListDatasetsCmd(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"list", "datasets"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	got := out.String()
	for _, want := range []string{"NAME", "scandiqa-da", "question-answering", "norec", "Danish"} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestResolveDataset(t *testing.T) {
	ds, err := resolveDataset("scandiqa-da", "", 10)
	if err != nil {
		t.Fatalf("resolveDataset: %v", err)
	}
	if ds.Name() != "scandiqa-da" || ds.Task() != dataset.TaskQA {
		t.Fatalf("unexpected dataset: %s / %s", ds.Name(), ds.Task())
	}
	if ds.Language().Code != "da" {
		t.Fatalf("language: got %q", ds.Language().Code)
	}

	if _, err := resolveDataset("", "", 0); err == nil {
		t.Fatal("expected error for missing dataset")
	}
	if _, err := resolveDataset("not-a-dataset", "", 0); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}

func TestBenchmarkCmd_MissingModel(t *testing.T) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"benchmark", "--dataset", "mmlu-da"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing --model")
	}
}

func TestLeaderboardCmd_MemoryStorage(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	cfgYAML := "storage:\n  type: memory\n"
	if err := os.WriteFile(cfgPath, []byte(cfgYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"leaderboard", "--config", cfgPath, "--dataset", "mmlu-da"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.Contains(out.String(), "RANK") {
		t.Fatalf("expected table header, got:\n%s", out.String())
	}
}

func TestLeaderboardCmd_MissingDataset(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"leaderboard"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected error for missing --dataset")
	}
}

func TestSupertaskFor(t *testing.T) {
	if got := supertaskFor(dataset.TaskQA); got != models.SupertaskQuestionAnswering {
		t.Fatalf("qa supertask: got %q", got)
	}
	if got := supertaskFor(dataset.TaskSentiment); got != models.SupertaskSequenceClassification {
		t.Fatalf("sentiment supertask: got %q", got)
	}
	if got := supertaskFor(dataset.TaskMultipleChoice); got != models.SupertaskSequenceClassification {
		t.Fatalf("mcq supertask: got %q", got)
	}
}
