package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const insecureJWTSecret = "supersecretkey"

type Config struct {
	Addr          string
	JWTSecret     string
	APITimeout    time.Duration
	TokenDuration time.Duration
	DatabasePath  string
	UploadDir     string
	MaxImageBytes int64
}

// fileConfig mirrors Config for YAML decoding; durations arrive as strings
// ("30s", "2h") and are parsed explicitly.
type fileConfig struct {
	Addr          string `yaml:"addr"`
	JWTSecret     string `yaml:"jwt_secret"`
	APITimeout    string `yaml:"timeout"`
	TokenDuration string `yaml:"token_duration"`
	DatabasePath  string `yaml:"database_path"`
	UploadDir     string `yaml:"upload_dir"`
	MaxImageBytes int64  `yaml:"max_image_bytes"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("MENTORMATCH_ADDR", ":8080"),
		JWTSecret:     getEnv("MENTORMATCH_JWT_SECRET", insecureJWTSecret),
		APITimeout:    15 * time.Second,
		TokenDuration: 1 * time.Hour,
		DatabasePath:  getEnv("MENTORMATCH_DATABASE_PATH", "mentor-mentee.db"),
		UploadDir:     getEnv("MENTORMATCH_UPLOAD_DIR", "uploads"),
		MaxImageBytes: 1 << 20,
	}
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var fc fileConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&fc); err != nil {
		return nil, err
	}

	if fc.Addr != "" {
		cfg.Addr = fc.Addr
	}
	if fc.JWTSecret != "" {
		cfg.JWTSecret = fc.JWTSecret
	}
	if fc.DatabasePath != "" {
		cfg.DatabasePath = fc.DatabasePath
	}
	if fc.UploadDir != "" {
		cfg.UploadDir = fc.UploadDir
	}
	if fc.MaxImageBytes > 0 {
		cfg.MaxImageBytes = fc.MaxImageBytes
	}
	if fc.APITimeout != "" {
		d, err := time.ParseDuration(fc.APITimeout)
		if err != nil {
			return nil, fmt.Errorf("parse timeout: %w", err)
		}
		cfg.APITimeout = d
	}
	if fc.TokenDuration != "" {
		d, err := time.ParseDuration(fc.TokenDuration)
		if err != nil {
			return nil, fmt.Errorf("parse token_duration: %w", err)
		}
		cfg.TokenDuration = d
	}

	return cfg, nil
}

// Validate rejects configurations that must never reach a real deployment.
// The default JWT secret is allowed only when MENTORMATCH_ENV=development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.TokenDuration <= 0 {
		return fmt.Errorf("token_duration must be positive")
	}
	if c.MaxImageBytes <= 0 {
		return fmt.Errorf("max_image_bytes must be positive")
	}
	if c.JWTSecret == insecureJWTSecret && os.Getenv("MENTORMATCH_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set MENTORMATCH_JWT_SECRET")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
