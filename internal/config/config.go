package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/ini.v1"
)

// DefaultPath is looked up in the working directory when no config file is given.
const DefaultPath = "reading-challenge.ini"

type Paths struct {
	Catalog      string
	PersonalDir  string
	PersonalYAML string
	Export       string
	Statistics   string
}

type YAML struct {
	Indent int
}

type Logging struct {
	Level  string
	Format string
}

type Config struct {
	Paths   Paths
	YAML    YAML
	Logging Logging
}

func Default() Config {
	return Config{
		Paths: Paths{
			Catalog:     "reading-challenge.yaml",
			PersonalDir: "personal",
			Statistics:  "personal/statistics.mmd",
		},
		YAML: YAML{Indent: 2},
		Logging: Logging{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads the INI file at path on top of Default. An empty path falls back
// to DefaultPath and silently uses defaults when that file does not exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}

	paths := file.Section("paths")
	cfg.Paths.Catalog = stringKey(paths, "catalog", cfg.Paths.Catalog)
	cfg.Paths.PersonalDir = stringKey(paths, "personal_dir", cfg.Paths.PersonalDir)
	cfg.Paths.PersonalYAML = stringKey(paths, "personal_yaml", cfg.Paths.PersonalYAML)
	cfg.Paths.Export = stringKey(paths, "export", cfg.Paths.Export)
	cfg.Paths.Statistics = stringKey(paths, "statistics", cfg.Paths.Statistics)

	cfg.YAML.Indent = file.Section("yaml").Key("indent").MustInt(cfg.YAML.Indent)

	logging := file.Section("logging")
	cfg.Logging.Level = stringKey(logging, "level", cfg.Logging.Level)
	cfg.Logging.Format = stringKey(logging, "format", cfg.Logging.Format)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Paths.Catalog) == "" {
		return errors.New("paths.catalog must not be empty")
	}
	if c.YAML.Indent < 2 || c.YAML.Indent > 9 {
		return fmt.Errorf("yaml.indent must be between 2 and 9, got %d", c.YAML.Indent)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "logfmt", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func stringKey(sec *ini.Section, name, fallback string) string {
	v := strings.TrimSpace(sec.Key(name).String())
	if v == "" {
		return fallback
	}
	return v
}
