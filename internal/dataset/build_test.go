package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBuildInput(t *testing.T, n int) string {
	t.Helper()
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb,
			`{"id": "cat%d/q%d", "question": "Question %d?", "choices": ["w", "x", "y", "z"], "answer": %d}`+"\n",
			i%3, i, i, i%4)
	}
	// Duplicate of the first row, dropped by dedup.
	fmt.Fprintf(&sb,
		`{"id": "cat0/q0-dup", "question": "Question 0?", "choices": ["w", "x", "y", "z"], "answer": 0}`+"\n")

	path := filepath.Join(t.TempDir(), "raw.jsonl")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
	return path
}

func TestBuild(t *testing.T) {
	inPath := writeBuildInput(t, 500)
	outDir := t.TempDir()

	res, err := Build(context.Background(), BuildOptions{
		Name:     "mmlu-da",
		LangCode: "da",
		InPath:   inPath,
		OutDir:   outDir,
	})
	require.NoError(t, err)

	assert.Equal(t, 500, res.Total, "duplicate row should be dropped")
	assert.Equal(t, 256, res.Val, "val split carved out first")
	assert.Equal(t, 244, res.Test, "test split clamped to the remainder")
	assert.Equal(t, 0, res.Train, "nothing left for train")
	require.Len(t, res.Files, 3)

	for _, path := range res.Files {
		_, err := os.Stat(path)
		require.NoError(t, err)
	}

	valRows, err := readJSONL[BuiltRow](context.Background(), filepath.Join(outDir, "mmlu-da-val.jsonl"))
	require.NoError(t, err)
	require.Len(t, valRows, 256)

	row := valRows[0]
	assert.Contains(t, row.Text, "Svarmuligheder:\n")
	assert.Contains(t, row.Text, "a. w")
	assert.Contains(t, []string{"a", "b", "c", "d"}, row.Label)
	assert.True(t, strings.HasPrefix(row.Category, "cat"), "category from id prefix: %q", row.Category)
}

func TestBuild_Deterministic(t *testing.T) {
	inPath := writeBuildInput(t, 300)

	load := func() []BuiltRow {
		outDir := t.TempDir()
		_, err := Build(context.Background(), BuildOptions{
			Name: "mmlu-sv", LangCode: "sv", InPath: inPath, OutDir: outDir,
		})
		require.NoError(t, err)
		rows, err := readJSONL[BuiltRow](context.Background(), filepath.Join(outDir, "mmlu-sv-val.jsonl"))
		require.NoError(t, err)
		return rows
	}

	assert.Equal(t, load(), load(), "same input and seed must produce identical splits")
}

func TestBuild_Validation(t *testing.T) {
	_, err := Build(context.Background(), BuildOptions{Name: "", InPath: "x", OutDir: "y"})
	assert.Error(t, err)

	_, err = Build(context.Background(), BuildOptions{Name: "d", InPath: "x", OutDir: ""})
	assert.Error(t, err)

	_, err = Build(context.Background(), BuildOptions{
		Name: "d", InPath: filepath.Join(t.TempDir(), "missing.jsonl"), OutDir: t.TempDir(),
	})
	assert.Error(t, err)
}

func TestSplitRows_LargeInput(t *testing.T) {
	rows := make([]BuiltRow, 4000)
	for i := range rows {
		rows[i] = BuiltRow{Text: fmt.Sprintf("t%d", i), Label: "a"}
	}

	train, val, test := splitRows(rows)
	assert.Len(t, val, 256)
	assert.Len(t, test, 2048)
	assert.Len(t, train, 1024)
}
