package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr          string        `yaml:"addr"`
	JWTSecret     string        `yaml:"jwt_secret"`
	APITimeout    time.Duration `yaml:"timeout"`
	DatabasePath  string        `yaml:"database_path"`
	TokenDuration time.Duration `yaml:"token_duration"`
	Storage       StorageConfig `yaml:"storage"`
	Worker        WorkerConfig  `yaml:"worker"`
}

// StorageConfig configures the S3-compatible object store holding inspection
// photos. PublicBaseURL is the externally reachable endpoint used to build
// the durable public URLs stored alongside image rows.
type StorageConfig struct {
	Endpoint      string `yaml:"endpoint"`
	PublicBaseURL string `yaml:"public_base_url"`
	Bucket        string `yaml:"bucket"`
	Region        string `yaml:"region"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	UseSSL        bool   `yaml:"use_ssl"`
	UsePathStyle  bool   `yaml:"use_path_style"`
}

// WorkerConfig controls the background pool that reconciles image markers
// left pending by an interrupted upload.
type WorkerConfig struct {
	Count          int           `yaml:"count"`
	ReconcileEvery time.Duration `yaml:"reconcile_every"`
	PendingCutoff  time.Duration `yaml:"pending_cutoff"`
	JobMaxAttempts int           `yaml:"job_max_attempts"`
}

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:          getEnv("HOMECHECK_ADDR", ":8080"),
		JWTSecret:     getEnv("HOMECHECK_JWT_SECRET", "supersecretkey"),
		APITimeout:    15 * time.Second,
		DatabasePath:  getEnv("HOMECHECK_DATABASE_PATH", "homecheck.db"),
		TokenDuration: 1 * time.Hour,
		Storage: StorageConfig{
			Endpoint:      getEnv("HOMECHECK_STORAGE_ENDPOINT", "http://localhost:9000"),
			PublicBaseURL: getEnv("HOMECHECK_STORAGE_PUBLIC_URL", "http://localhost:9000"),
			Bucket:        getEnv("HOMECHECK_STORAGE_BUCKET", "inspection-images"),
			Region:        getEnv("HOMECHECK_STORAGE_REGION", "us-east-1"),
			AccessKey:     os.Getenv("HOMECHECK_STORAGE_ACCESS_KEY"),
			SecretKey:     os.Getenv("HOMECHECK_STORAGE_SECRET_KEY"),
			UsePathStyle:  true,
		},
		Worker: WorkerConfig{
			Count:          2,
			ReconcileEvery: 5 * time.Minute,
			PendingCutoff:  15 * time.Minute,
			JobMaxAttempts: 3,
		},
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// Validate rejects configurations that must not reach production. The
// default JWT secret is only tolerated when HOMECHECK_ENV is development.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("jwt_secret is required")
	}
	if c.JWTSecret == "supersecretkey" && os.Getenv("HOMECHECK_ENV") != "development" {
		return fmt.Errorf("jwt_secret is the insecure default; set HOMECHECK_JWT_SECRET")
	}
	if c.Storage.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	if c.Worker.Count <= 0 {
		return fmt.Errorf("worker.count must be positive")
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
