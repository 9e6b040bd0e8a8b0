package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/wikiconvert/internal/creole"
	"git.home.luguber.info/inful/wikiconvert/internal/foundation/errors"
)

// Config represents the converter configuration.
type Config struct {
	// SourcePattern selects source pages when the input is a directory.
	SourcePattern   string               `yaml:"source_pattern"`
	OutputExtension string               `yaml:"output_extension"`
	PreIndent       string               `yaml:"pre_indent"`
	Replacements    []creole.Replacement `yaml:"replacements"`
	KeepGoing       bool                 `yaml:"keep_going"`
	StrictRestore   bool                 `yaml:"strict_restore"`
	DryRun          bool                 `yaml:"dry_run"`
	Logging         LoggingConfig        `yaml:"logging"`
	Commit          CommitConfig         `yaml:"commit"`
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// CommitConfig describes the commit made by --commit.
type CommitConfig struct {
	Message     string `yaml:"message"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// envFiles are loaded before the config file; existing variables win.
var envFiles = []string{".env", ".env.local"}

// Load reads the YAML configuration at path. An empty path returns Default().
// ${VAR} references in the file are expanded from the environment, which is
// first seeded from .env files when present.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.ConfigError("configuration file not found").WithContext("path", path).Build()
		}
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to read config file").
			WithContext("path", path).Fatal().Build()
	}

	cfg, err := Parse([]byte(os.ExpandEnv(string(data))))
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, applies defaults and validates it.
// Keys absent from the document keep their default values.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "failed to unmarshal config").Fatal().Build()
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFiles() {
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Fprintf(os.Stderr, "Note: could not load %s: %v\n", f, err)
		}
	}
}

func (c *Config) applyDefaults() {
	if c.SourcePattern == "" {
		c.SourcePattern = DefaultSourcePattern
	}
	if c.OutputExtension == "" {
		c.OutputExtension = DefaultOutputExtension
	}
	if c.PreIndent == "" {
		c.PreIndent = creole.DefaultPreIndent
	}
	c.Logging.Level = NormalizeLogLevel(string(c.Logging.Level))
	c.Logging.Format = NormalizeLogFormat(string(c.Logging.Format))
	if c.Commit.Message == "" {
		c.Commit.Message = DefaultCommitMessage
	}
	if c.Commit.AuthorName == "" {
		c.Commit.AuthorName = DefaultAuthorName
	}
	if c.Commit.AuthorEmail == "" {
		c.Commit.AuthorEmail = DefaultAuthorEmail
	}
}

// Validate checks field values that defaults cannot repair.
func (c *Config) Validate() error {
	if _, err := filepath.Match(c.SourcePattern, ""); err != nil {
		return errors.ConfigError("source_pattern is not a valid glob").
			WithContext("field", "source_pattern").
			WithContext("value", c.SourcePattern).
			WithCause(err).Build()
	}
	if strings.ContainsRune(c.SourcePattern, filepath.Separator) {
		return errors.ConfigError("source_pattern must not contain a path separator").
			WithContext("field", "source_pattern").Build()
	}
	if !strings.HasPrefix(c.OutputExtension, ".") || strings.ContainsRune(c.OutputExtension, filepath.Separator) {
		return errors.ConfigError("output_extension must start with a dot").
			WithContext("field", "output_extension").
			WithContext("value", c.OutputExtension).Build()
	}
	for i, r := range c.Replacements {
		if r.From == "" {
			return errors.ConfigError("replacement has empty from").
				WithContext("field", fmt.Sprintf("replacements[%d].from", i)).Build()
		}
	}
	return nil
}

// Pipeline returns the transformer options for a project.
func (c *Config) Pipeline(projectID string) creole.Options {
	return creole.Options{
		ProjectID:     projectID,
		PreIndent:     c.PreIndent,
		Replacements:  c.Replacements,
		StrictRestore: c.StrictRestore,
	}
}
