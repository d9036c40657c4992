// Package models selects and loads model backends. Each model type has its
// own setup; the type is decided once, up front, and drives all later
// dispatch.
package models

import (
	"fmt"
	"strings"

	"github.com/nordtext/scandibench/internal/language"
)

// Framework is the training framework of a hub model.
type Framework string

const (
	FrameworkPyTorch Framework = "pytorch"
	FrameworkJAX     Framework = "jax"
)

// Type tags how a model is obtained and run.
type Type string

const (
	// TypeFresh is a freshly initialized baseline model.
	TypeFresh Type = "fresh"
	// TypeHub is a model hosted on the model hub.
	TypeHub Type = "hub"
	// TypeLocal is a model stored in a local directory.
	TypeLocal Type = "local"
	// TypeRemote is a model behind a text-generation API.
	TypeRemote Type = "remote"
)

// ParseType resolves an explicit model-type tag.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fresh":
		return TypeFresh, nil
	case "hub", "hf":
		return TypeHub, nil
	case "local":
		return TypeLocal, nil
	case "remote", "api":
		return TypeRemote, nil
	default:
		return "", fmt.Errorf("models: unknown model type %q", s)
	}
}

// Supertasks a model head can be configured for.
const (
	SupertaskSequenceClassification = "sequence-classification"
	SupertaskTokenClassification    = "token-classification"
	SupertaskQuestionAnswering      = "question-answering"
)

// Config is the resolved configuration of one model.
type Config struct {
	ModelID   string
	Revision  string
	Framework Framework
	Task      string
	Languages []language.Language
	Type      Type
}
