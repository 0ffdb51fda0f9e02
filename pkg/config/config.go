package config

import (
	"fmt"
	"os"
	"time"

	"github.com/gobwas/glob"
	"gopkg.in/yaml.v3"
)

// Time units used for command bounds.
const (
	Millisecond = time.Millisecond
	Second      = 1000 * Millisecond
	Minute      = 60 * Second
	Hour        = 60 * Minute
	Day         = 24 * Hour
)

const (
	// DefaultNavigationTimeout applies when go_to carries no timeout.
	DefaultNavigationTimeout = 30 * Second

	// DefaultIdleThreshold is how long a browser may live before it is
	// recycled once no page is leased from it.
	DefaultIdleThreshold = 16 * Hour

	// DefaultWaitUntil is the navigation lifecycle event go_to waits for.
	DefaultWaitUntil = "networkidle0"
)

// WaitUntilValues lists the accepted go_to waitUntil values.
var WaitUntilValues = []string{"load", "domcontentloaded", "networkidle0", "networkidle2"}

// Config is the runtime configuration of a test run.
type Config struct {
	Browser     BrowserConfig    `yaml:"browser" json:"browser"`
	Actions     ActionsConfig    `yaml:"actions" json:"actions"`
	Screenshots ScreenshotConfig `yaml:"screenshots" json:"screenshots"`
	Artifacts   ArtifactConfig   `yaml:"artifacts" json:"artifacts"`
	Logging     LoggingConfig    `yaml:"logging" json:"logging"`

	// Path the configuration was loaded from, empty for defaults
	Path string `yaml:"-" json:"-"`
}

// BrowserConfig controls the shared browser process.
type BrowserConfig struct {
	Headless bool `yaml:"headless" json:"headless"`

	// IdleThreshold is the age after which an unleased browser is relaunched.
	// Zero disables recycling.
	IdleThreshold time.Duration `yaml:"idle_threshold" json:"idle_threshold"`

	// CloseAfterRun closes the browser when a top-level run finishes instead
	// of keeping it for the next run.
	CloseAfterRun bool `yaml:"close_after_run" json:"close_after_run"`

	Viewport Viewport `yaml:"viewport" json:"viewport"`
}

// Viewport is the page size in pixels.
type Viewport struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`
}

// ActionsConfig holds command defaults.
type ActionsConfig struct {
	DefaultTimeout   time.Duration `yaml:"default_timeout" json:"default_timeout"`
	DefaultWaitUntil string        `yaml:"default_wait_until" json:"default_wait_until"`
}

// ScreenshotConfig restricts where capture_screen may write.
type ScreenshotConfig struct {
	Dir             string   `yaml:"dir" json:"dir"`
	AllowedPatterns []string `yaml:"allowed_patterns" json:"allowed_patterns"`
	DeniedPatterns  []string `yaml:"denied_patterns" json:"denied_patterns"`
}

// ArtifactConfig defines which report files are written after a run.
type ArtifactConfig struct {
	Enabled   bool   `yaml:"enabled" json:"enabled"`
	OutputDir string `yaml:"output_dir" json:"output_dir"`
	JSON      bool   `yaml:"json" json:"json"`
	Markdown  bool   `yaml:"markdown" json:"markdown"`
}

// LoggingConfig defines logging configuration.
type LoggingConfig struct {
	// Verbosity controls logging level: quiet, normal, verbose, debug
	Verbosity string `yaml:"verbosity" json:"verbosity"`
}

// DefaultConfig returns a configuration suitable for local runs.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:      true,
			IdleThreshold: DefaultIdleThreshold,
			Viewport:      Viewport{Width: 1280, Height: 720},
		},
		Actions: ActionsConfig{
			DefaultTimeout:   DefaultNavigationTimeout,
			DefaultWaitUntil: DefaultWaitUntil,
		},
		Screenshots: ScreenshotConfig{
			Dir: ".",
		},
		Artifacts: ArtifactConfig{
			Enabled:   true,
			OutputDir: ".webuitest/artifacts",
			JSON:      true,
			Markdown:  true,
		},
		Logging: LoggingConfig{
			Verbosity: "normal",
		},
	}
}

// Load reads a YAML configuration on top of DefaultConfig. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.Path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration and fills in empty defaults.
func (c *Config) Validate() error {
	if c.Browser.IdleThreshold < 0 {
		return fmt.Errorf("browser.idle_threshold cannot be negative")
	}

	vp := c.Browser.Viewport
	if vp.Width < 100 || vp.Width > 5000 {
		return fmt.Errorf("viewport width must be between 100 and 5000 pixels")
	}
	if vp.Height < 100 || vp.Height > 5000 {
		return fmt.Errorf("viewport height must be between 100 and 5000 pixels")
	}

	if c.Actions.DefaultTimeout < 0 {
		return fmt.Errorf("actions.default_timeout cannot be negative")
	}
	if c.Actions.DefaultTimeout > Hour {
		return fmt.Errorf("actions.default_timeout cannot exceed %s", Hour)
	}

	if c.Actions.DefaultWaitUntil == "" {
		c.Actions.DefaultWaitUntil = DefaultWaitUntil
	}
	if !IsWaitUntil(c.Actions.DefaultWaitUntil) {
		return fmt.Errorf("invalid actions.default_wait_until: %s (must be one of %v)", c.Actions.DefaultWaitUntil, WaitUntilValues)
	}

	for _, pattern := range append(append([]string{}, c.Screenshots.AllowedPatterns...), c.Screenshots.DeniedPatterns...) {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("invalid screenshot pattern %q: %w", pattern, err)
		}
	}

	if c.Artifacts.Enabled && c.Artifacts.OutputDir == "" {
		return fmt.Errorf("artifacts.output_dir is required when artifacts are enabled")
	}

	if c.Logging.Verbosity == "" {
		c.Logging.Verbosity = "normal"
	}
	validLevels := map[string]bool{
		"quiet":   true,
		"normal":  true,
		"verbose": true,
		"debug":   true,
	}
	if !validLevels[c.Logging.Verbosity] {
		return fmt.Errorf("invalid logging verbosity: %s (must be 'quiet', 'normal', 'verbose', or 'debug')", c.Logging.Verbosity)
	}

	return nil
}

// IsWaitUntil reports whether v is an accepted waitUntil value.
func IsWaitUntil(v string) bool {
	for _, allowed := range WaitUntilValues {
		if v == allowed {
			return true
		}
	}
	return false
}
