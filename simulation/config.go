package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"feedsim/model"
	"feedsim/network"
	"feedsim/ranker"
)

// Details is the "Simulation_details" section of the configuration.
type Details struct {
	NSteps int `json:"n_steps,omitempty"`
}

// Config is the full run configuration. The JSON field names mirror
// the configuration files of the archived experiments so existing
// config.json files load unchanged.
type Config struct {
	Graph       network.Spec `json:"Graph"`
	OD          model.ODSpec `json:"OD"`
	Ranker      ranker.Spec  `json:"Ranker"`
	Details     Details      `json:"Simulation_details"`
	KPosts      int          `json:"k_posts,omitempty"`
	PostHistory int          `json:"post_history,omitempty"`
}

const (
	defaultNSteps      = 100
	defaultKPosts      = 1
	defaultPostHistory = 50
)

func (c Config) nSteps() int {
	if c.Details.NSteps <= 0 {
		return defaultNSteps
	}
	return c.Details.NSteps
}

func (c Config) kPosts() int {
	if c.KPosts <= 0 {
		return defaultKPosts
	}
	return c.KPosts
}

func (c Config) postHistory() int {
	if c.PostHistory <= 0 {
		return defaultPostHistory
	}
	return c.PostHistory
}

// Validate resolves the opinion model and ranking policy, failing fast
// on unknown names before any simulation work begins. The graph type
// is checked when the first replica builds its network; unknown types
// are caught here too by a dry parameter check.
func (c Config) Validate() error {
	if _, err := c.OD.NewModel(); err != nil {
		return err
	}
	if _, err := c.Ranker.Policy(); err != nil {
		return err
	}
	switch c.Graph.Type {
	case "", "NULL", "ER", "BA", "WS":
	default:
		return fmt.Errorf("network: unknown graph type %q", c.Graph.Type)
	}
	return nil
}

// LoadConfig reads a configuration from a JSON file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("simulation: reading config: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("simulation: parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
