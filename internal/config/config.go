package config

import "time"

// Config is the root application configuration.
type Config struct {
	Engine       EngineConfig     `yaml:"engine"`
	Dictionaries DictionaryConfig `yaml:"dictionaries"`
	Server       ServerConfig     `yaml:"server"`
	Database     DatabaseConfig   `yaml:"database"`
	Log          LogConfig        `yaml:"log"`
}

// EngineConfig holds pipeline settings.
type EngineConfig struct {
	RulesDir     string `yaml:"rules_dir"      env:"ENGINE_RULES_DIR"`
	FoldCase     bool   `yaml:"fold_case"      env:"ENGINE_FOLD_CASE"      env-default:"false"`
	MaxTextBytes int    `yaml:"max_text_bytes" env:"ENGINE_MAX_TEXT_BYTES" env-default:"1048576"`
	BuiltinRules bool   `yaml:"builtin_rules"  env:"ENGINE_BUILTIN_RULES"  env-default:"true"`
}

// DictionaryConfig holds dictionary source settings.
type DictionaryConfig struct {
	Dir   string `yaml:"dir"   env:"DICTIONARIES_DIR"`
	Watch bool   `yaml:"watch" env:"DICTIONARIES_WATCH" env-default:"false"`
	// Preload lists languages loaded from the database at startup.
	Preload   []string      `yaml:"preload"    env:"DICTIONARIES_PRELOAD" env-separator:","`
	Debounce  time.Duration `yaml:"debounce"   env:"DICTIONARIES_DEBOUNCE" env-default:"250ms"`
	MaxSizeMB int           `yaml:"max_size_mb" env:"DICTIONARIES_MAX_SIZE_MB" env-default:"256"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyMB       int           `yaml:"max_body_mb"      env:"SERVER_MAX_BODY_MB"      env-default:"64"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty DSN runs
// the service without a lexicon database.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	Migrate         bool          `yaml:"migrate"            env:"DATABASE_MIGRATE"            env-default:"true"`
}

// Enabled reports whether a database is configured.
func (c DatabaseConfig) Enabled() bool { return c.DSN != "" }

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
