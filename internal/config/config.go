package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "PETFRIENDS"

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a libpq keyword/value string.
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// KafkaConfig holds event publishing settings. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Credentials is one seeded account.
type Credentials struct {
	Email    string
	Password string
}

// ServiceConfig holds all configuration for the stand-in API server.
type ServiceConfig struct {
	Port        string
	AppEnv      string
	Storage     string
	DBConfig    DatabaseConfig
	KafkaConfig KafkaConfig
	SeedUsers   []Credentials
	KeyCacheTTL time.Duration
}

// Load reads the server configuration from the environment and an optional .env file.
func Load() (*ServiceConfig, error) {
	v := newViper()
	v.SetDefault("service_port", ":8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("storage", StorageMemory)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "petfriends")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("kafka_topic", "petfriends.pets")
	v.SetDefault("key_cache_ttl", "5m")

	storage := strings.ToLower(v.GetString("storage"))
	if storage != StorageMemory && storage != StoragePostgres {
		return nil, fmt.Errorf("unsupported storage %q", storage)
	}

	seeds, err := ParseSeedUsers(v.GetString("seed_users"))
	if err != nil {
		return nil, err
	}

	port := v.GetString("service_port")
	if !strings.Contains(port, ":") {
		port = ":" + port
	}

	return &ServiceConfig{
		Port:    port,
		AppEnv:  v.GetString("app_env"),
		Storage: storage,
		DBConfig: DatabaseConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			DBName:   v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		KafkaConfig: KafkaConfig{
			Brokers: splitList(v.GetString("kafka_brokers")),
			Topic:   v.GetString("kafka_topic"),
		},
		SeedUsers:   seeds,
		KeyCacheTTL: v.GetDuration("key_cache_ttl"),
	}, nil
}

// ClientConfig configures the API client, the CLI and the end-to-end suite.
type ClientConfig struct {
	BaseURL        string
	Email          string
	Password       string
	AppEnv         string
	RequestTimeout time.Duration
	LogRequests    bool
	LogResponses   bool
	FixturesDir    string
}

// LoadClientConfig reads client settings. An empty BaseURL means "not configured";
// callers decide the fallback.
func LoadClientConfig() *ClientConfig {
	v := newViper()
	v.SetDefault("app_env", "development")
	v.SetDefault("request_timeout", "30s")
	v.SetDefault("log_requests", false)
	v.SetDefault("log_responses", false)
	v.SetDefault("fixtures_dir", "testdata/images")

	return &ClientConfig{
		BaseURL:        strings.TrimRight(v.GetString("base_url"), "/"),
		Email:          v.GetString("email"),
		Password:       v.GetString("password"),
		AppEnv:         v.GetString("app_env"),
		RequestTimeout: v.GetDuration("request_timeout"),
		LogRequests:    v.GetBool("log_requests"),
		LogResponses:   v.GetBool("log_responses"),
		FixturesDir:    v.GetString("fixtures_dir"),
	}
}

// ParseSeedUsers parses "email:password,email:password".
func ParseSeedUsers(s string) ([]Credentials, error) {
	var out []Credentials
	for _, item := range splitList(s) {
		email, password, ok := strings.Cut(item, ":")
		if !ok || email == "" || password == "" {
			return nil, fmt.Errorf("invalid seed user %q: want email:password", item)
		}
		out = append(out, Credentials{Email: email, Password: password})
	}
	return out, nil
}

func newViper() *viper.Viper {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// loadEnvFile loads the nearest .env walking up from the working directory.
// Variables already set in the environment win.
func loadEnvFile() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		path := filepath.Join(dir, ".env")
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
			return
		}
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
