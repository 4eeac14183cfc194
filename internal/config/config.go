package config

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"look/internal/errors"
	"look/internal/log"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvConfigPath = "LOOK_CONFIG"
	EnvEditor     = "LOOK_EDITOR"
)

// DefaultEditor is launched by the "code" command unless configured otherwise.
const DefaultEditor = "code"

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3}|#[0-9a-fA-F]{6}|[0-9]{1,3})$`)

func init() {
	// Report validation failures under the keys users write in the file.
	validation.ErrorTag = "yaml"
}

// Config represents the application configuration structure.
type Config struct {
	Editor          string      `yaml:"editor"`            // Program the "code" command launches
	ExitAfterEditor bool        `yaml:"exit_after_editor"` // Leave the navigator when the editor reports diagnostics
	Exclude         []string    `yaml:"exclude"`           // Glob patterns for entry names to skip
	LogFile         string      `yaml:"log_file"`          // Log destination while the navigator is on screen
	LogLevel        string      `yaml:"log_level"`         // trace, debug, info, warn or error
	Theme           ThemeConfig `yaml:"theme"`
}

// ThemeConfig holds navigator colours as lipgloss colour strings
// (ANSI numbers or hex).
type ThemeConfig struct {
	Highlight  string `yaml:"highlight"`   // Matched substring
	SelectedFg string `yaml:"selected_fg"` // Selected row text
	SelectedBg string `yaml:"selected_bg"` // Selected row background
	Border     string `yaml:"border"`      // Pane borders
	Title      string `yaml:"title"`       // Pane titles
}

// Validate checks every colour parses.
func (t ThemeConfig) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Highlight, validation.Required, validation.Match(colorPattern)),
		validation.Field(&t.SelectedFg, validation.Required, validation.Match(colorPattern)),
		validation.Field(&t.SelectedBg, validation.Required, validation.Match(colorPattern)),
		validation.Field(&t.Border, validation.Required, validation.Match(colorPattern)),
		validation.Field(&t.Title, validation.Required, validation.Match(colorPattern)),
	)
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Editor:          DefaultEditor,
		ExitAfterEditor: false,
		Exclude:         []string{},
		LogFile:         "",
		LogLevel:        "info",
		Theme: ThemeConfig{
			Highlight:  "1",  // red
			SelectedFg: "9",  // light red
			SelectedBg: "7",  // white
			Border:     "12", // light blue
			Title:      "4",  // blue
		},
	}
}

// DefaultPath returns $LOOK_CONFIG, or ~/.config/look/config.yaml.
func DefaultPath() (string, error) {
	if path := os.Getenv(EnvConfigPath); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "look", "config.yaml"), nil
}

// LoadConfig loads configuration from the default location.
func LoadConfig() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, errors.NewConfigError("cannot locate config file", "", errors.ConfigNotFound, err)
	}
	return LoadConfigFile(path)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns the defaults.
func LoadConfigFile(path string) (*Config, error) {
	cfg := New()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("no config file at %s, using defaults", path)
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, errors.NewConfigError("error reading config file", path, errors.ConfigNotFound, err)
	}

	// Unset keys keep their defaults
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.NewConfigError("error parsing config file", path, errors.InvalidConfig, err)
	}
	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.NewConfigError("invalid configuration", path, errors.InvalidConfig, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if editor := strings.TrimSpace(os.Getenv(EnvEditor)); editor != "" {
		c.Editor = editor
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Editor, validation.Required),
		validation.Field(&c.LogLevel, validation.Required, validation.By(validLevel)),
		validation.Field(&c.Exclude, validation.Each(validation.Required, validation.By(validGlob))),
		validation.Field(&c.Theme),
	)
}

func validLevel(value interface{}) error {
	s, _ := value.(string)
	if err := log.ParseLevel(s); err != nil {
		return errors.Newf("unknown log level %q", s)
	}
	return nil
}

func validGlob(value interface{}) error {
	s, _ := value.(string)
	if _, err := glob.Compile(s); err != nil {
		return errors.Wrapf(err, "bad pattern %q", s)
	}
	return nil
}
