package llm

import (
	"context"
	"testing"

	"github.com/nordtext/scandibench/internal/config"
)

type fakeProvider struct{ name string }

func (p *fakeProvider) Name() string { return p.name }
func (p *fakeProvider) Complete(ctx context.Context, req *Request) (*Response, error) {
	return &Response{Text: "ok"}, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()
	r.Register(&fakeProvider{name: "OpenAI"})

	if _, ok := r.Get("openai"); !ok {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if _, ok := r.Get("missing"); ok {
		t.Fatal("expected lookup of unregistered provider to fail")
	}
}

func TestNewRegistryFromConfig(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "openai",
			Providers: map[string]config.ProviderConfig{
				"openai":    {APIKey: "k1", Model: "gpt-4o-mini"},
				"anthropic": {APIKey: "k2"},
			},
		},
	}

	r, err := NewRegistryFromConfig(cfg)
	if err != nil {
		t.Fatalf("NewRegistryFromConfig: %v", err)
	}
	for _, name := range []string{"openai", "anthropic"} {
		if _, ok := r.Get(name); !ok {
			t.Fatalf("provider %q not registered", name)
		}
	}
}

func TestNewRegistryFromConfig_UnknownProvider(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			Providers: map[string]config.ProviderConfig{"mystery": {APIKey: "k"}},
		},
	}
	if _, err := NewRegistryFromConfig(cfg); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestDefaultProviderFromConfig(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "anthropic",
			Providers: map[string]config.ProviderConfig{
				"anthropic": {APIKey: "k"},
			},
		},
	}

	p, err := DefaultProviderFromConfig(cfg)
	if err != nil {
		t.Fatalf("DefaultProviderFromConfig: %v", err)
	}
	if p.Name() != "anthropic" {
		t.Fatalf("provider name: got %q", p.Name())
	}
}

func TestDefaultProviderFromConfig_Missing(t *testing.T) {
	cfg := &config.Config{
		LLM: config.LLMConfig{
			DefaultProvider: "openai",
			Providers:       map[string]config.ProviderConfig{},
		},
	}
	if _, err := DefaultProviderFromConfig(cfg); err == nil {
		t.Fatal("expected error when default provider is not configured")
	}
}
