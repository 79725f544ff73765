package config

import (
	"fmt"
	"strings"

	"github.com/heartmarshall/miskai-core/internal/domain"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
// Preload languages are normalized in place.
func (c *Config) Validate() error {
	if c.Engine.MaxTextBytes < 0 {
		return fmt.Errorf("engine.max_text_bytes must be >= 0 (got %d)", c.Engine.MaxTextBytes)
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyMB <= 0 {
		return fmt.Errorf("server.max_body_mb must be > 0 (got %d)", c.Server.MaxBodyMB)
	}

	if c.Dictionaries.Watch && c.Dictionaries.Dir == "" {
		return fmt.Errorf("dictionaries.watch requires dictionaries.dir")
	}
	if c.Dictionaries.MaxSizeMB <= 0 {
		return fmt.Errorf("dictionaries.max_size_mb must be > 0 (got %d)", c.Dictionaries.MaxSizeMB)
	}

	if len(c.Dictionaries.Preload) > 0 && !c.Database.Enabled() {
		return fmt.Errorf("dictionaries.preload requires database.dsn")
	}
	langs, err := parseLanguages(c.Dictionaries.Preload)
	if err != nil {
		return fmt.Errorf("dictionaries.preload: %w", err)
	}
	c.Dictionaries.Preload = langs

	if c.Database.Enabled() && c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}

	return nil
}

// parseLanguages normalizes a list of language codes, skipping blanks.
func parseLanguages(raw []string) ([]string, error) {
	out := make([]string, 0, len(raw))
	for _, s := range raw {
		if strings.TrimSpace(s) == "" {
			continue
		}
		lang, err := domain.ParseLanguage(s)
		if err != nil {
			return nil, err
		}
		out = append(out, lang.String())
	}
	return out, nil
}
