package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	gohub "github.com/gomlx/go-huggingface/hub"

	"github.com/nordtext/scandibench/internal/hub"
	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/tokenizer"
)

// HubSetup serves models hosted on the model hub.
type HubSetup struct {
	Client    *hub.Client
	CacheDir  string
	AuthToken string
}

func (s *HubSetup) Type() Type { return TypeHub }

func (s *HubSetup) Exists(ctx context.Context, modelID string) (bool, error) {
	if s == nil || s.Client == nil {
		return false, errors.New("models: hub setup has no client")
	}
	_, err := s.Client.GetModel(ctx, modelID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, hub.ErrModelNotFound) {
		return false, nil
	}
	return false, err
}

func (s *HubSetup) ModelConfig(ctx context.Context, modelID string) (*Config, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("models: hub setup has no client")
	}

	id, revision := hub.SplitModelID(modelID)
	info, err := s.Client.GetModel(ctx, id)
	if err != nil {
		return nil, err
	}

	framework, err := frameworkFromTags(info.Tags)
	if err != nil {
		return nil, fmt.Errorf("%w (model %q)", err, id)
	}

	task := strings.TrimSpace(info.PipelineTag)
	if task == "" {
		task = "fill-mask"
	}

	return &Config{
		ModelID:   info.Name(),
		Revision:  revision,
		Framework: framework,
		Task:      task,
		Languages: languagesFromTags(info.Tags),
		Type:      TypeHub,
	}, nil
}

// Load downloads the tokenizer artifacts for the model and wraps them for
// pair encoding. Model weights stay on the hub; benchmarking encoder
// weights is a training concern outside this harness.
func (s *HubSetup) Load(ctx context.Context, cfg *Config, supertask string) (*Loaded, error) {
	if cfg == nil {
		return nil, errors.New("models: nil model config")
	}

	repo := gohub.New(cfg.ModelID)
	if s.CacheDir != "" {
		repo = repo.WithCacheDir(s.CacheDir)
	}
	if s.AuthToken != "" {
		repo = repo.WithAuth(s.AuthToken)
	}

	tok, err := tokenizer.FromHub(repo)
	if err != nil {
		return nil, fmt.Errorf("models: load tokenizer for %q: %w", cfg.ModelID, err)
	}

	return &Loaded{
		Config:    cfg,
		Tokenizer: tok,
	}, nil
}

func frameworkFromTags(tags []string) (Framework, error) {
	lower := make(map[string]bool, len(tags))
	for _, t := range tags {
		lower[strings.ToLower(strings.TrimSpace(t))] = true
	}

	switch {
	case lower["pytorch"]:
		return FrameworkPyTorch, nil
	case lower["jax"]:
		return FrameworkJAX, nil
	case lower["spacy"]:
		return "", fmt.Errorf("%w: spaCy models are not supported", hub.ErrUnsupportedFramework)
	case lower["tf"], lower["tensorflow"], lower["keras"]:
		return "", fmt.Errorf("%w: TensorFlow/Keras models are not supported", hub.ErrUnsupportedFramework)
	default:
		return FrameworkPyTorch, nil
	}
}

func languagesFromTags(tags []string) []language.Language {
	out := make([]language.Language, 0, 2)
	for _, t := range tags {
		if l, ok := language.Get(t); ok {
			out = append(out, l)
		}
	}
	return out
}
