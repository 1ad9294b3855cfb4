package logger

import (
	"fmt"
	"log/slog"
	"strings"
)

// Config holds logger settings loaded from the environment.
type Config struct {
	Level  string `env:"LOG_LEVEL" envDefault:""`
	Format string `env:"LOG_FORMAT" envDefault:""`
}

// FromConfig turns cfg into options. Empty fields leave environment defaults
// in place, so FromConfig goes after WithEnvironment.
func FromConfig(cfg Config) ([]Option, error) {
	var opts []Option
	if lvl := strings.TrimSpace(cfg.Level); lvl != "" {
		var l slog.Level
		if err := l.UnmarshalText([]byte(lvl)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", lvl, err)
		}
		opts = append(opts, WithLevel(l))
	}
	switch f := Format(strings.ToLower(strings.TrimSpace(cfg.Format))); f {
	case "":
	case FormatJSON, FormatText:
		opts = append(opts, WithFormat(f))
	default:
		return nil, fmt.Errorf("invalid log format %q: must be %q or %q", cfg.Format, FormatJSON, FormatText)
	}
	return opts, nil
}
