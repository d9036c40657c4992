package models

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	gohub "github.com/gomlx/go-huggingface/hub"

	"github.com/nordtext/scandibench/internal/language"
	"github.com/nordtext/scandibench/internal/tokenizer"
)

// freshBase maps a fresh model name to the hub repo its architecture and
// tokenizer are initialized from.
var freshBase = map[string]string{
	"electra-small":    "google/electra-small-discriminator",
	"xlm-roberta-base": "xlm-roberta-base",
}

// headClasses maps fresh architectures to their per-supertask heads.
var headClasses = map[string]map[string]string{
	"electra-small": {
		SupertaskSequenceClassification: "ElectraForSequenceClassification",
		SupertaskTokenClassification:    "ElectraForTokenClassification",
		SupertaskQuestionAnswering:      "ElectraForQuestionAnswering",
	},
	"xlm-roberta-base": {
		SupertaskSequenceClassification: "XLMRobertaForSequenceClassification",
		SupertaskTokenClassification:    "XLMRobertaForTokenClassification",
		SupertaskQuestionAnswering:      "XLMRobertaForQuestionAnswering",
	},
}

var freshIDPattern = regexp.MustCompile(`(^.*::|@.*$|^fresh-)`)

// FreshSetup serves freshly initialized baseline models.
type FreshSetup struct {
	CacheDir  string
	AuthToken string
}

func (s *FreshSetup) Type() Type { return TypeFresh }

func stripFreshID(modelID string) string {
	return freshIDPattern.ReplaceAllString(strings.TrimSpace(modelID), "")
}

func (s *FreshSetup) Exists(ctx context.Context, modelID string) (bool, error) {
	_, ok := freshBase[stripFreshID(modelID)]
	return ok, nil
}

func (s *FreshSetup) ModelConfig(ctx context.Context, modelID string) (*Config, error) {
	name := stripFreshID(modelID)
	if _, ok := freshBase[name]; !ok {
		return nil, fmt.Errorf("models: %q is not a fresh model", modelID)
	}
	return &Config{
		ModelID:   name,
		Revision:  "main",
		Framework: FrameworkPyTorch,
		Task:      "fill-mask",
		Languages: []language.Language{},
		Type:      TypeFresh,
	}, nil
}

// Load resolves the head class for the supertask and fetches the base
// model's tokenizer from the hub.
func (s *FreshSetup) Load(ctx context.Context, cfg *Config, supertask string) (*Loaded, error) {
	if cfg == nil {
		return nil, fmt.Errorf("models: nil model config")
	}

	heads, ok := headClasses[cfg.ModelID]
	if !ok {
		return nil, fmt.Errorf("models: model %q is not supported as a fresh model", cfg.ModelID)
	}
	if _, ok := heads[supertask]; !ok {
		return nil, fmt.Errorf("models: supertask %q is not supported for model %q", supertask, cfg.ModelID)
	}

	baseID := freshBase[cfg.ModelID]
	repo := gohub.New(baseID)
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
