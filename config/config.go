package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"blogstore/app/models"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Storage StorageConfig `yaml:"storage"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes" validate:"gt=0"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
}

type StorageConfig struct {
	DataDir   string `yaml:"data_dir" validate:"required_unless=InMemory true"`
	InMemory  bool   `yaml:"in_memory"`
	BackupDir string `yaml:"backup_dir" validate:"required"`
}

// StoreConfig seeds a fresh store. Once a checkpoint exists the persisted
// configuration wins.
type StoreConfig struct {
	EnforceCommentOwnership bool `yaml:"enforce_comment_ownership"`
	models.Config           `yaml:",inline"`
}

type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			MaxBodyBytes:    1 << 20,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Storage: StorageConfig{
			DataDir:   "data/badger",
			BackupDir: "data/backups",
		},
		Store: StoreConfig{
			EnforceCommentOwnership: true,
			Config:                  models.DefaultConfig(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads defaults, then the optional YAML file at path, then environment
// overrides, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Server.Addr = getenv("BLOGSTORE_ADDR", cfg.Server.Addr)
	cfg.Storage.DataDir = getenv("BLOGSTORE_DATA_DIR", cfg.Storage.DataDir)
	cfg.Log.Level = getenv("BLOGSTORE_LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = getenv("BLOGSTORE_LOG_FORMAT", cfg.Log.Format)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid config: %s failed %q", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
