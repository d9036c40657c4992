package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	Hub       HubConfig       `yaml:"hub"`
	Benchmark BenchmarkConfig `yaml:"benchmark"`
	LLM       LLMConfig       `yaml:"llm"`
	Storage   StorageConfig   `yaml:"storage"`
}

type HubConfig struct {
	Endpoint  string `yaml:"endpoint,omitempty"`
	AuthToken string `yaml:"auth_token,omitempty"`
	CacheDir  string `yaml:"cache_dir,omitempty"`
}

type BenchmarkConfig struct {
	MaxLength     int      `yaml:"max_length,omitempty"`
	Stride        int      `yaml:"stride,omitempty"`
	MaxExamples   int      `yaml:"max_examples,omitempty"`
	RaiseErrors   bool     `yaml:"raise_errors,omitempty"`
	EvaluateTrain bool     `yaml:"evaluate_train,omitempty"`
	Languages     []string `yaml:"languages,omitempty"`
}

type LLMConfig struct {
	DefaultProvider string                    `yaml:"default_provider,omitempty"`
	Providers       map[string]ProviderConfig `yaml:"providers,omitempty"`
}

type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

type StorageConfig struct {
	Type string `yaml:"type,omitempty"` // "sqlite" or "memory"
	Path string `yaml:"path,omitempty"` // SQLite file path
}

func Load(path string) (*Config, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultPath
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}

	applyDefaults(&cfg)
	applyEnv(&cfg)
	return &cfg, nil
}

// Default returns a config suitable for running without a config file.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	applyEnv(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}
	if cfg.LLM.Providers == nil {
		cfg.LLM.Providers = make(map[string]ProviderConfig)
	}
	if strings.TrimSpace(cfg.LLM.DefaultProvider) == "" {
		cfg.LLM.DefaultProvider = "openai"
	}
	if cfg.Benchmark.MaxLength <= 0 {
		cfg.Benchmark.MaxLength = 512
	}
	if cfg.Benchmark.Stride <= 0 {
		cfg.Benchmark.Stride = 128
	}
	if strings.TrimSpace(cfg.Hub.CacheDir) == "" {
		cfg.Hub.CacheDir = ".scandibench"
	}
}

func applyEnv(cfg *Config) {
	if cfg == nil {
		return
	}

	if v := strings.TrimSpace(os.Getenv("HUGGINGFACE_API_TOKEN")); v != "" {
		cfg.Hub.AuthToken = v
	} else if v := strings.TrimSpace(os.Getenv("HF_TOKEN")); v != "" {
		cfg.Hub.AuthToken = v
	}

	if v := strings.TrimSpace(os.Getenv("OPENAI_API_KEY")); v != "" {
		p := cfg.LLM.Providers["openai"]
		p.APIKey = v
		cfg.LLM.Providers["openai"] = p
	}

	if v := strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY")); v != "" {
		p := cfg.LLM.Providers["anthropic"]
		p.APIKey = v
		cfg.LLM.Providers["anthropic"] = p
	}
}
