package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Interview is the interview shape loaded from YAML: which categories a
// candidate can pick and how a session is sized.
type Interview struct {
	Categories          []string `yaml:"categories"`
	QuestionsPerSession int      `yaml:"questions_per_session"`
	MinGuestAnswerLen   int      `yaml:"min_guest_answer_length"`
}

// LoadInterview loads and validates the interview configuration file.
func LoadInterview(filename string) (*Interview, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg Interview
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse interview config: %w", err)
	}

	if err := validateInterview(&cfg); err != nil {
		return nil, fmt.Errorf("invalid interview config: %w", err)
	}

	return &cfg, nil
}

func validateInterview(cfg *Interview) error {
	if len(cfg.Categories) == 0 {
		return fmt.Errorf("at least one category is required")
	}
	for i, c := range cfg.Categories {
		if c == "" {
			return fmt.Errorf("category %d is empty", i)
		}
	}
	if cfg.QuestionsPerSession <= 0 {
		return fmt.Errorf("questions_per_session must be greater than 0")
	}
	if cfg.MinGuestAnswerLen < 0 {
		return fmt.Errorf("min_guest_answer_length cannot be negative")
	}
	return nil
}

// HasCategory reports whether a category is one of the configured ones.
func (i *Interview) HasCategory(category string) bool {
	for _, c := range i.Categories {
		if c == category {
			return true
		}
	}
	return false
}
