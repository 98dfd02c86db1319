// Package config loads server and generation settings from an
// optional YAML file, with environment variables taking precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/quizcraft/backend/internal/models"
)

type Config struct {
	Port           string   `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`

	// GeneratorBackend selects the generation capability: anthropic,
	// openai, or heuristic.
	GeneratorBackend string `yaml:"generator_backend"`

	Quiz QuizDefaults `yaml:"quiz"`
}

// QuizDefaults are the server-wide generation defaults. Requests may
// override any of them per call.
type QuizDefaults struct {
	TargetItemCount int `yaml:"target_item_count"`
	MinItemCount    int `yaml:"min_item_count"`

	// MaxRetriesPerUnit is a pointer so an explicit zero in the file
	// (disable retries) survives loading.
	MaxRetriesPerUnit *int `yaml:"max_retries_per_unit"`

	Concurrency        int      `yaml:"concurrency"`
	PerRequestDeadline Duration `yaml:"per_request_deadline"`
	CapabilityTimeout  Duration `yaml:"capability_timeout"`

	SimilarityThreshold float64 `yaml:"similarity_threshold"`
	GroundedThreshold   float64 `yaml:"grounded_threshold"`
	WorthinessThreshold float64 `yaml:"worthiness_threshold"`
}

// Duration accepts YAML scalars in time.ParseDuration form, like
// "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Load builds the effective config: built-in defaults, then the YAML
// file at path (skipped when path is empty), then environment
// variables.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:             "8080",
		AllowedOrigins:   []string{"*"},
		GeneratorBackend: "heuristic",
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.AllowedOrigins = origins
	}
	if v := os.Getenv("GENERATOR_BACKEND"); v != "" {
		c.GeneratorBackend = v
	}
}

// QuizConfig converts the file-level defaults into a request config.
// An absent max_retries_per_unit falls back to the standard budget.
func (c *Config) QuizConfig() models.QuizConfig {
	retries := models.DefaultMaxRetriesPerUnit
	if c.Quiz.MaxRetriesPerUnit != nil {
		retries = *c.Quiz.MaxRetriesPerUnit
	}
	return models.QuizConfig{
		TargetItemCount:     c.Quiz.TargetItemCount,
		MinItemCount:        c.Quiz.MinItemCount,
		MaxRetriesPerUnit:   retries,
		Concurrency:         c.Quiz.Concurrency,
		PerRequestDeadline:  time.Duration(c.Quiz.PerRequestDeadline),
		CapabilityTimeout:   time.Duration(c.Quiz.CapabilityTimeout),
		SimilarityThreshold: c.Quiz.SimilarityThreshold,
		GroundedThreshold:   c.Quiz.GroundedThreshold,
		WorthinessThreshold: c.Quiz.WorthinessThreshold,
	}
}
