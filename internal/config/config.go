package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Brownie44l1/digit-api/internal/preprocess"
)

type Config struct {
	Port              string        `yaml:"port"`
	ModelPath         string        `yaml:"model_path"`
	MetadataPath      string        `yaml:"metadata_path"`
	SharedLibraryPath string        `yaml:"onnxruntime_lib"`
	Interpolation     string        `yaml:"interpolation"`
	MaxUploadBytes    int64         `yaml:"max_upload_bytes"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
	Debug             bool          `yaml:"debug"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Port:            "8080",
		ModelPath:       "models/model.onnx",
		Interpolation:   preprocess.Lanczos3,
		MaxUploadBytes:  10 << 20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// LoadFromFile reads a YAML file over the defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides settings from the environment.
func (c *Config) ApplyEnv() {
	for env, dst := range map[string]*string{
		"PORT":            &c.Port,
		"MODEL_PATH":      &c.ModelPath,
		"METADATA_PATH":   &c.MetadataPath,
		"ONNXRUNTIME_LIB": &c.SharedLibraryPath,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must be set")
	}
	if c.ModelPath == "" {
		return fmt.Errorf("model_path must be set")
	}
	if !slices.Contains(preprocess.Interpolations, c.Interpolation) {
		return fmt.Errorf("unknown interpolation %q, want one of %v", c.Interpolation, preprocess.Interpolations)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max_upload_bytes must be positive, got %d", c.MaxUploadBytes)
	}
	return nil
}
