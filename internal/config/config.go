package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/GustavoCaso/finbot/internal/logger"
)

// Backend selects where ledger snapshots are persisted.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendFile     Backend = "file"
	BackendRedis    Backend = "redis"
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

type Config struct {
	Storage StorageConfig `yaml:"storage" toml:"storage"`
	DB      DBConfig      `yaml:"db"      toml:"db"`
	Logger  logger.Config `yaml:"logger"  toml:"logger"`
	Server  ServerConfig  `yaml:"server"  toml:"server"`
	Auth    AuthConfig    `yaml:"auth"    toml:"auth"`
}

type StorageConfig struct {
	Backend     Backend `yaml:"backend"      toml:"backend"`
	File        string  `yaml:"file"         toml:"file"`
	RedisURL    string  `yaml:"redis_url"    toml:"redis_url"`
	Key         string  `yaml:"key"          toml:"key"`
	PostgresDSN string  `yaml:"postgres_dsn" toml:"postgres_dsn"`
}

// DBConfig tunes the SQLite backend.
type DBConfig struct {
	Source            string        `yaml:"source"             toml:"source"`
	MaxOpenConns      int           `yaml:"max_open_conns"     toml:"max_open_conns"`
	MaxIdleConns      int           `yaml:"max_idle_conns"     toml:"max_idle_conns"`
	ConnMaxLifetime   time.Duration `yaml:"conn_max_lifetime"  toml:"conn_max_lifetime"`
	ConnMaxIdleTime   time.Duration `yaml:"conn_max_idle_time" toml:"conn_max_idle_time"`
	JournalMode       string        `yaml:"journal_mode"       toml:"journal_mode"`
	Synchronous       string        `yaml:"synchronous"        toml:"synchronous"`
	CacheSize         int           `yaml:"cache_size"         toml:"cache_size"`
	BusyTimeout       int           `yaml:"busy_timeout"       toml:"busy_timeout"`
	WALAutocheckpoint int           `yaml:"wal_autocheckpoint" toml:"wal_autocheckpoint"`
	TempStore         string        `yaml:"temp_store"         toml:"temp_store"`
}

type ServerConfig struct {
	Port              string        `yaml:"port"                toml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout" toml:"read_header_timeout"`
}

type AuthConfig struct {
	SessionDuration time.Duration `yaml:"session_duration" toml:"session_duration"`
}

const (
	DefaultKey = "finbot-transactions"

	defaultBackend           = BackendSQLite
	defaultDBSource          = "finbot.db"
	defaultStorageFile       = DefaultKey + ".json"
	defaultRedisURL          = "redis://localhost:6379/0"
	defaultLogLevel          = logger.LevelInfo
	defaultLogFormat         = logger.FormatText
	defaultLogOutput         = "stdout"
	defaultPort              = "8080"
	defaultReadHeaderTimeout = 3 * time.Second
	defaultSessionDuration   = 7 * 24 * time.Hour
	defaultJournalMode       = "WAL"
	defaultBusyTimeout       = 5000

	envFile = ".env"
)

// Parse reads the configuration file at path when it exists and applies the
// FINBOT_* environment variables on top. A .env file in the working directory
// is loaded first; variables already set in the environment win. A missing
// configuration file is not an error.
func Parse(path string) (*Config, error) {
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	conf := &Config{}

	if path != "" {
		if err := conf.parseFile(path); err != nil {
			return nil, err
		}
	}

	conf.parseEnv()
	conf.setDefaults()

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return conf, nil
}

func (c *Config) parseFile(path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err = toml.Decode(string(content), c); err != nil {
			return fmt.Errorf("failed to decode toml config %s: %w", path, err)
		}
	default:
		if err = yaml.Unmarshal(content, c); err != nil {
			return fmt.Errorf("failed to decode yaml config %s: %w", path, err)
		}
	}

	return nil
}

func (c *Config) parseEnv() {
	if backend := os.Getenv("FINBOT_STORAGE"); backend != "" {
		c.Storage.Backend = Backend(backend)
	}

	if file := os.Getenv("FINBOT_STORAGE_FILE"); file != "" {
		c.Storage.File = file
	}

	if url := os.Getenv("FINBOT_REDIS_URL"); url != "" {
		c.Storage.RedisURL = url
	}

	if key := os.Getenv("FINBOT_STORAGE_KEY"); key != "" {
		c.Storage.Key = key
	}

	if dsn := os.Getenv("FINBOT_POSTGRES_DSN"); dsn != "" {
		c.Storage.PostgresDSN = dsn
	}

	if db := os.Getenv("FINBOT_DB"); db != "" {
		c.DB.Source = db
	}

	if level := os.Getenv("FINBOT_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("FINBOT_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("FINBOT_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}

	if port := os.Getenv("FINBOT_PORT"); port != "" {
		c.Server.Port = port
	}

	if duration := os.Getenv("FINBOT_SESSION_DURATION"); duration != "" {
		if d, err := time.ParseDuration(duration); err == nil {
			c.Auth.SessionDuration = d
		}
	}

	if timeout := os.Getenv("FINBOT_READ_HEADER_TIMEOUT"); timeout != "" {
		if seconds, err := strconv.Atoi(timeout); err == nil {
			c.Server.ReadHeaderTimeout = time.Duration(seconds) * time.Second
		}
	}
}

func (c *Config) setDefaults() {
	if c.Storage.Backend == "" {
		c.Storage.Backend = defaultBackend
	}

	if c.Storage.File == "" {
		c.Storage.File = defaultStorageFile
	}

	if c.Storage.RedisURL == "" {
		c.Storage.RedisURL = defaultRedisURL
	}

	if c.Storage.Key == "" {
		c.Storage.Key = DefaultKey
	}

	if c.DB.Source == "" {
		c.DB.Source = defaultDBSource
	}

	if c.DB.JournalMode == "" {
		c.DB.JournalMode = defaultJournalMode
	}

	if c.DB.BusyTimeout == 0 {
		c.DB.BusyTimeout = defaultBusyTimeout
	}

	if c.Logger.Level == "" {
		c.Logger.Level = defaultLogLevel
	}

	if c.Logger.Format == "" {
		c.Logger.Format = defaultLogFormat
	}

	if c.Logger.Output == "" {
		c.Logger.Output = defaultLogOutput
	}

	if c.Server.Port == "" {
		c.Server.Port = defaultPort
	}

	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = defaultReadHeaderTimeout
	}

	if c.Auth.SessionDuration == 0 {
		c.Auth.SessionDuration = defaultSessionDuration
	}
}

// Validate reports settings the application cannot start with.
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case BackendSQLite, BackendFile, BackendRedis, BackendMemory:
	case BackendPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage backend postgres requires postgres_dsn")
		}
	default:
		return fmt.Errorf("unsupported storage backend %q", c.Storage.Backend)
	}

	if c.Auth.SessionDuration < 0 {
		return fmt.Errorf("session duration must be positive, got %s", c.Auth.SessionDuration)
	}

	return nil
}
