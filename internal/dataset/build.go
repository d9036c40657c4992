package dataset

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
)

// Split sizes for built datasets. Val is carved out first, then test, and
// train takes at most trainSize of the remainder.
const (
	buildSeed = 4242

	valSize   = 256
	testSize  = 2048
	trainSize = 1024
)

// BuildOptions configures a dataset build.
type BuildOptions struct {
	// Name is the dataset name, used in output file names.
	Name string
	// LangCode picks the language of the choices header.
	LangCode string
	// InPath is the source jsonl file or directory of mcq rows.
	InPath string
	// OutDir receives the <name>-train/val/test.jsonl splits.
	OutDir string
}

// BuiltRow is one row of a built dataset split.
type BuiltRow struct {
	Text     string `json:"text"`
	Label    string `json:"label"`
	Category string `json:"category,omitempty"`
}

// BuildResult reports what a build produced.
type BuildResult struct {
	Total int
	Train int
	Val   int
	Test  int
	Files []string
}

// Build reads raw multiple-choice rows, formats them with the language's
// choices header, dedups on the formatted text and writes deterministic
// train/val/test jsonl splits.
func Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		return nil, errors.New("dataset: nil context")
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, errors.New("dataset: empty dataset name")
	}
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, errors.New("dataset: empty output dir")
	}

	rows, err := readJSONL[mcqRow](ctx, opts.InPath)
	if err != nil {
		return nil, fmt.Errorf("dataset: read %q: %w", opts.InPath, err)
	}

	built, err := formatRows(rows, opts.LangCode)
	if err != nil {
		return nil, err
	}
	if len(built) == 0 {
		return nil, errors.New("dataset: no usable rows in input")
	}

	train, val, test := splitRows(built)

	result := &BuildResult{
		Total: len(built),
		Train: len(train),
		Val:   len(val),
		Test:  len(test),
	}
	for _, split := range []struct {
		suffix string
		rows   []BuiltRow
	}{
		{"train", train},
		{"val", val},
		{"test", test},
	} {
		path := filepath.Join(opts.OutDir, fmt.Sprintf("%s-%s.jsonl", name, split.suffix))
		if err := writeJSONL(path, split.rows); err != nil {
			return nil, err
		}
		result.Files = append(result.Files, path)
	}
	return result, nil
}

func formatRows(rows []mcqRow, langCode string) ([]BuiltRow, error) {
	seen := make(map[string]bool, len(rows))
	out := make([]BuiltRow, 0, len(rows))
	for _, row := range rows {
		question := strings.TrimSpace(row.Question)
		choices := compactStrings(row.Choices)
		if question == "" || len(choices) == 0 {
			continue
		}

		idx, err := expectedChoiceIndex(row.Answer, choices)
		if err != nil {
			continue
		}

		text := FormatMCQText(question, choices, langCode)
		if seen[text] {
			continue
		}
		seen[text] = true

		category := strings.TrimSpace(row.Category)
		if category == "" {
			if id := strings.TrimSpace(row.ID); strings.Contains(id, "/") {
				category = strings.SplitN(id, "/", 2)[0]
			}
		}

		out = append(out, BuiltRow{
			Text:     text,
			Label:    string(rune('a' + idx)),
			Category: category,
		})
	}
	return out, nil
}

// splitRows shuffles with a fixed seed and carves out val, then test, then
// train, clamping each to what remains.
func splitRows(rows []BuiltRow) (train, val, test []BuiltRow) {
	shuffled := make([]BuiltRow, len(rows))
	copy(shuffled, rows)
	rng := rand.New(rand.NewSource(buildSeed))
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nVal := min(valSize, len(shuffled))
	val = shuffled[:nVal]
	rest := shuffled[nVal:]

	nTest := min(testSize, len(rest))
	test = rest[:nTest]
	rest = rest[nTest:]

	nTrain := min(trainSize, len(rest))
	train = rest[:nTrain]
	return train, val, test
}
