package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Avatar storage
	S3Bucket  string
	AWSRegion string
}

// LoadConfig creates a new Config instance with values from environment
// variables or secret files, depending on the environment.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadFromEnv(cfg)
		if cfg.DBPassword == "" {
			return nil, fmt.Errorf("TEST_DB_PASSWORD environment variable is required in CI environment")
		}
	case Development, Test:
		if err := loadFromSecrets(cfg); err != nil {
			return nil, fmt.Errorf("failed to load %s configuration: %w", env, err)
		}
	case Production:
		if err := loadFromSecrets(cfg); err != nil {
			return nil, fmt.Errorf("failed to load production configuration: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from plain environment variables
// (used in CI, where secrets arrive as masked env vars).
func loadFromEnv(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("TEST_DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("TEST_JWT_SECRET")
	cfg.RedisPassword = os.Getenv("TEST_REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("TEST_REDIS_URL")
	cfg.RedisDB = 0

	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")
}

// secretFiles are the Docker secrets read in development and
// production.
var secretFiles = []string{
	"server_port",
	"server_host",
	"db_host",
	"db_port",
	"db_user",
	"db_password",
	"db_name",
	"db_ssl_mode",
	"redis_host",
	"redis_port",
	"redis_password",
	"redis_url",
	"jwt_secret",
}

// loadFromSecrets loads configuration from Docker secret files.
func loadFromSecrets(cfg *Config) error {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}

	secrets := make(map[string]string)
	for _, name := range secretFiles {
		content, err := os.ReadFile(filepath.Join(secretsDir, name))
		if err != nil {
			return fmt.Errorf("failed to read secret %s: %v", name, err)
		}
		secrets[name] = strings.TrimSpace(string(content))
	}

	cfg.ServerPort = secrets["server_port"]
	cfg.ServerHost = secrets["server_host"]
	cfg.DBHost = secrets["db_host"]
	cfg.DBPort = secrets["db_port"]
	cfg.DBUser = secrets["db_user"]
	cfg.DBPassword = secrets["db_password"]
	cfg.DBName = secrets["db_name"]
	cfg.DBSSLMode = secrets["db_ssl_mode"]
	cfg.RedisHost = secrets["redis_host"]
	cfg.RedisPort = secrets["redis_port"]
	cfg.RedisPassword = secrets["redis_password"]
	cfg.RedisURL = secrets["redis_url"]
	cfg.RedisDB = 0
	cfg.JWTSecret = secrets["jwt_secret"]

	// Avatar storage stays env-based; AWS credentials come from the
	// default provider chain.
	cfg.S3Bucket = os.Getenv("S3_BUCKET_NAME")
	cfg.AWSRegion = os.Getenv("AWS_REGION")

	return nil
}
