package models

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nordtext/scandibench/internal/language"
)

// LocalSetup serves models stored in a local directory. The directory must
// contain a config.json; tokenizer artifacts are picked up when present.
type LocalSetup struct{}

func (s *LocalSetup) Type() Type { return TypeLocal }

func (s *LocalSetup) Exists(ctx context.Context, modelID string) (bool, error) {
	info, err := os.Stat(modelID)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("models: stat %q: %w", modelID, err)
	}
	return info.IsDir(), nil
}

func (s *LocalSetup) ModelConfig(ctx context.Context, modelID string) (*Config, error) {
	ok, err := s.Exists(ctx, modelID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("models: %q is not a local model directory", modelID)
	}
	if _, err := os.Stat(filepath.Join(modelID, "config.json")); err != nil {
		return nil, fmt.Errorf("models: local model %q has no config.json: %w", modelID, err)
	}
	return &Config{
		ModelID:   modelID,
		Revision:  "main",
		Framework: FrameworkPyTorch,
		Task:      "fill-mask",
		Languages: []language.Language{},
		Type:      TypeLocal,
	}, nil
}

// Load inventories the model directory. Local checkpoints carry their own
// tokenizer files but we have no hub repo to wrap them through, so callers
// get the artifacts only.
func (s *LocalSetup) Load(ctx context.Context, cfg *Config, supertask string) (*Loaded, error) {
	if cfg == nil {
		return nil, fmt.Errorf("models: nil model config")
	}

	entries, err := os.ReadDir(cfg.ModelID)
	if err != nil {
		return nil, fmt.Errorf("models: read local model %q: %w", cfg.ModelID, err)
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			files = append(files, e.Name())
		}
	}

	return &Loaded{
		Config:    cfg,
		Artifacts: &Artifacts{Dir: cfg.ModelID, Files: files},
	}, nil
}
