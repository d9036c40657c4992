package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/llm"
)

// RemoteSetup serves models behind a text-generation API. Model IDs take the
// form "provider/model", e.g. "openai/gpt-4o-mini".
type RemoteSetup struct {
	Registry *llm.Registry
}

func (s *RemoteSetup) Type() Type { return TypeRemote }

// splitRemoteID splits "provider/model" into its parts. The model part may
// itself contain slashes.
func splitRemoteID(modelID string) (provider, model string, ok bool) {
	provider, model, found := strings.Cut(strings.TrimSpace(modelID), "/")
	if !found || provider == "" || model == "" {
		return "", "", false
	}
	return provider, model, true
}

func (s *RemoteSetup) Exists(ctx context.Context, modelID string) (bool, error) {
	if s == nil || s.Registry == nil {
		return false, nil
	}
	provider, _, ok := splitRemoteID(modelID)
	if !ok {
		return false, nil
	}
	_, ok = s.Registry.Get(provider)
	return ok, nil
}

func (s *RemoteSetup) ModelConfig(ctx context.Context, modelID string) (*Config, error) {
	provider, _, ok := splitRemoteID(modelID)
	if !ok {
		return nil, fmt.Errorf("models: remote model ID %q must be provider/model", modelID)
	}
	if s == nil || s.Registry == nil {
		return nil, fmt.Errorf("models: no provider registry configured")
	}
	if _, ok := s.Registry.Get(provider); !ok {
		return nil, fmt.Errorf("models: provider %q is not configured", provider)
	}
	return &Config{
		ModelID:   strings.TrimSpace(modelID),
		Revision:  "main",
		Framework: FrameworkPyTorch,
		Task:      "text-generation",
		Languages: []language.Language{},
		Type:      TypeRemote,
	}, nil
}

func (s *RemoteSetup) Load(ctx context.Context, cfg *Config, supertask string) (*Loaded, error) {
	if cfg == nil {
		return nil, fmt.Errorf("models: nil model config")
	}
	provider, _, ok := splitRemoteID(cfg.ModelID)
	if !ok {
		return nil, fmt.Errorf("models: remote model ID %q must be provider/model", cfg.ModelID)
	}
	p, found := s.Registry.Get(provider)
	if !found {
		return nil, fmt.Errorf("models: provider %q is not configured", provider)
	}
	return &Loaded{
		Config:   cfg,
		Provider: p,
	}, nil
}
