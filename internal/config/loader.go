package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnv names the environment variable consulted when no path is given.
const PathEnv = "CONFIG_PATH"

const defaultPath = "./config.yaml"

// Load reads the YAML file at path, then the environment, then defaults.
// An empty path falls back to $CONFIG_PATH and then to ./config.yaml. Only the
// implicit ./config.yaml may be missing, in which case ENV and defaults are
// used alone.
func Load(path string) (*Config, error) {
	path, required := resolvePath(path)

	var cfg Config
	switch _, err := os.Stat(path); {
	case err == nil:
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	case required || !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	default:
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// resolvePath picks the file to read and reports whether it must exist.
func resolvePath(flag string) (string, bool) {
	if flag != "" {
		return flag, true
	}
	if env := os.Getenv(PathEnv); env != "" {
		return env, true
	}
	return defaultPath, false
}
