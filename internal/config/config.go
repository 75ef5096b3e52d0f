package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the API server and the CLI.
type Config struct {
	// Backend selects where user and product documents live: rest, mongo or memory.
	Backend string `yaml:"backend"`

	Resource ResourceConfig `yaml:"resource"`
	Mongo    MongoConfig    `yaml:"mongo"`
	Server   ServerConfig   `yaml:"server"`
	Auth     AuthConfig     `yaml:"auth"`
	Session  SessionConfig  `yaml:"session"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ResourceConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type ServerConfig struct {
	Addr         string   `yaml:"addr"`
	AllowOrigins []string `yaml:"allow_origins"`
	GinMode      string   `yaml:"gin_mode"`
}

type AuthConfig struct {
	// PasswordMode is plaintext (match the resource server by equality) or bcrypt.
	PasswordMode string        `yaml:"password_mode"`
	JWTSecret    string        `yaml:"jwt_secret"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

type SessionConfig struct {
	// Storage is file or sqlite.
	Storage string `yaml:"storage"`
	Path    string `yaml:"path"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type LoggingConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

const (
	BackendREST   = "rest"
	BackendMongo  = "mongo"
	BackendMemory = "memory"

	PasswordPlaintext = "plaintext"
	PasswordBcrypt    = "bcrypt"

	StorageFile   = "file"
	StorageSQLite = "sqlite"
)

func Default() Config {
	return Config{
		Backend: BackendREST,
		Resource: ResourceConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "shoecart",
		},
		Server: ServerConfig{
			Addr:         ":8080",
			AllowOrigins: []string{"http://localhost:5173"},
		},
		Auth: AuthConfig{
			PasswordMode: PasswordPlaintext,
			JWTSecret:    "SECRET",
			TokenTTL:     24 * time.Hour,
		},
		Session: SessionConfig{
			Storage: StorageFile,
			Path:    defaultSessionPath(),
		},
		Kafka: KafkaConfig{
			Topic: "shoecart.orders",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "shoecart", "session.json")
}

// Load reads path (if it exists), then .env, then SHOECART_* environment
// variables, each layer overriding the previous one.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	// A missing .env is normal outside development.
	_ = godotenv.Load()

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Backend, "SHOECART_BACKEND")
	setString(&cfg.Resource.BaseURL, "SHOECART_RESOURCE_URL")
	setString(&cfg.Mongo.URI, "MONGO_URL")
	setString(&cfg.Mongo.URI, "SHOECART_MONGO_URI")
	setString(&cfg.Mongo.Database, "SHOECART_MONGO_DATABASE")
	setString(&cfg.Server.Addr, "SHOECART_ADDR")
	setString(&cfg.Server.GinMode, "GIN_MODE")
	setString(&cfg.Auth.PasswordMode, "SHOECART_PASSWORD_MODE")
	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Session.Storage, "SHOECART_SESSION_STORAGE")
	setString(&cfg.Session.Path, "SHOECART_SESSION_PATH")
	setString(&cfg.Kafka.Topic, "SHOECART_KAFKA_TOPIC")
	setString(&cfg.Logging.Level, "SHOECART_LOG_LEVEL")

	if v := os.Getenv("SHOECART_ALLOW_ORIGINS"); v != "" {
		cfg.Server.AllowOrigins = splitList(v)
	}
	if v := os.Getenv("SHOECART_KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = splitList(v)
	}
	if v := os.Getenv("SHOECART_RESOURCE_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHOECART_RESOURCE_TIMEOUT: %w", err)
		}
		cfg.Resource.Timeout = d
	}
	if v := os.Getenv("SHOECART_TOKEN_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("SHOECART_TOKEN_TTL: %w", err)
		}
		cfg.Auth.TokenTTL = d
	}
	if v := os.Getenv("SHOECART_LOG_DEVELOPMENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("SHOECART_LOG_DEVELOPMENT: %w", err)
		}
		cfg.Logging.Development = b
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (c Config) Validate() error {
	switch c.Backend {
	case BackendREST:
		if c.Resource.BaseURL == "" {
			return errors.New("resource.base_url is required for the rest backend")
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return errors.New("mongo.uri and mongo.database are required for the mongo backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	switch c.Auth.PasswordMode {
	case PasswordPlaintext, PasswordBcrypt:
	default:
		return fmt.Errorf("unknown auth.password_mode %q", c.Auth.PasswordMode)
	}

	switch c.Session.Storage {
	case StorageFile, StorageSQLite:
	default:
		return fmt.Errorf("unknown session.storage %q", c.Session.Storage)
	}
	return nil
}
