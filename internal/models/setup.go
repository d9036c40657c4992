package models

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/nordtext/scandibench/internal/llm"
	"github.com/nordtext/scandibench/internal/tokenizer"
)

// Artifacts are the files a non-remote setup materializes on disk.
type Artifacts struct {
	Dir   string
	Files []string
}

// Loaded is the outcome of loading a model. Remote models carry a Provider;
// the others carry a pair tokenizer and their downloaded artifacts.
type Loaded struct {
	Config    *Config
	Tokenizer tokenizer.PairTokenizer
	Provider  llm.Provider
	Artifacts *Artifacts
}

// Setup knows how to recognize and load models of one Type.
type Setup interface {
	// Type is the enumerated tag this setup serves.
	Type() Type

	// Exists reports whether the model ID denotes a model of this type.
	Exists(ctx context.Context, modelID string) (bool, error)

	// ModelConfig resolves the model's configuration.
	ModelConfig(ctx context.Context, modelID string) (*Config, error)

	// Load materializes the model for the given supertask.
	Load(ctx context.Context, cfg *Config, supertask string) (*Loaded, error)
}

// Selector resolves a model ID to the setup that owns it. Setups are probed
// in registration order; the first match wins.
type Selector struct {
	setups []Setup
}

func NewSelector(setups ...Setup) *Selector {
	s := &Selector{}
	for _, setup := range setups {
		if setup != nil {
			s.setups = append(s.setups, setup)
		}
	}
	return s
}

// ForType returns the setup registered for an explicit type tag.
func (s *Selector) ForType(t Type) (Setup, error) {
	if s == nil {
		return nil, errors.New("models: nil selector")
	}
	for _, setup := range s.setups {
		if setup.Type() == t {
			return setup, nil
		}
	}
	return nil, fmt.Errorf("models: no setup registered for type %q", t)
}

// Resolve probes the registered setups for a model ID without an explicit
// type tag.
func (s *Selector) Resolve(ctx context.Context, modelID string) (Setup, error) {
	if s == nil {
		return nil, errors.New("models: nil selector")
	}
	modelID = strings.TrimSpace(modelID)
	if modelID == "" {
		return nil, errors.New("models: empty model id")
	}

	for _, setup := range s.setups {
		ok, err := setup.Exists(ctx, modelID)
		if err != nil {
			return nil, err
		}
		if ok {
			return setup, nil
		}
	}
	return nil, fmt.Errorf("models: model %q not found by any setup", modelID)
}
