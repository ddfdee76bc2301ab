package robot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const DefaultConfigFile = "wordcrane.json"

// ErrNotConfigured means no follower arm has been set up yet.
var ErrNotConfigured = errors.New("robot arm not configured, run 'wordcrane setup' first")

// Config holds the robot configuration.
type Config struct {
	Follower ArmConfig `json:"follower"`
}

// ArmConfig holds configuration for a single arm.
type ArmConfig struct {
	Port        string      `json:"port"`
	Calibration Calibration `json:"calibration,omitempty"`
}

// IsCalibrated returns true if the arm has calibration data.
func (a *ArmConfig) IsCalibrated() bool {
	return len(a.Calibration) > 0
}

// LoadConfigFrom loads configuration from path. A missing file yields
// ErrNotConfigured.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Follower.Port == "" || !cfg.Follower.IsCalibrated() {
		return nil, ErrNotConfigured
	}
	return &cfg, nil
}

// SaveTo saves configuration to path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
