package browser

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultBaseURL is the public demo site the scenario catalogue targets.
const DefaultBaseURL = "http://the-internet.herokuapp.com"

// Environment variables read by ApplyEnv.
const (
	EnvBaseURL  = "INTERNET_BASE_URL"
	EnvBin      = "BROWSER_BIN"
	EnvHeadless = "BROWSER_HEADLESS"
	EnvTimeout  = "BROWSER_TIMEOUT"
)

// Config configures browser launch and driver timeouts.
type Config struct {
	BaseURL       string        `yaml:"base_url"`       // Relative addresses resolve against this
	Headless      bool          `yaml:"headless"`       // Run in headless mode (default: true)
	Bin           string        `yaml:"bin"`            // Browser binary; empty means look it up on PATH
	AllowDownload bool          `yaml:"allow_download"` // Let rod fetch a Chromium when none is found
	NoSandbox     bool          `yaml:"no_sandbox"`     // For container runs
	Timeout       time.Duration `yaml:"timeout"`        // Per driver operation (default: 30s)
	WaitTimeout   time.Duration `yaml:"wait_timeout"`   // WaitUntil bound when none is given (default: 10s)
	PollInterval  time.Duration `yaml:"poll_interval"`  // First WaitUntil poll interval (default: 100ms)
	SlowMotion    time.Duration `yaml:"slow_motion"`    // Delay between input events, for watching runs
	Trace         bool          `yaml:"trace"`          // Log rod's per-action trace

	Logger *slog.Logger `yaml:"-"`
}

// DefaultConfig returns sensible defaults for running against the public site.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		Headless:      true,
		AllowDownload: true,
		NoSandbox:     true,
		Timeout:       30 * time.Second,
		WaitTimeout:   10 * time.Second,
		PollInterval:  100 * time.Millisecond,
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides fields from the environment.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv(EnvBin); v != "" {
		c.Bin = v
	}
	if v := os.Getenv(EnvHeadless); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHeadless, err)
		}
		c.Headless = b
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	return nil
}

// Validate checks that timeouts are positive and BaseURL is absolute.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout must be positive")
	}
	if c.WaitTimeout <= 0 {
		return errors.New("wait timeout must be positive")
	}
	if c.PollInterval <= 0 {
		return errors.New("poll interval must be positive")
	}
	if c.BaseURL != "" {
		u, err := url.Parse(c.BaseURL)
		if err != nil {
			return fmt.Errorf("invalid base URL: %w", err)
		}
		if u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("base URL %q must be absolute", c.BaseURL)
		}
	}
	return nil
}

// Resolve turns address into an absolute URL. Absolute addresses are
// returned unchanged; anything else is joined onto BaseURL.
func (c Config) Resolve(address string) (string, error) {
	ref, err := url.Parse(address)
	if err != nil {
		return "", err
	}
	if ref.IsAbs() {
		return ref.String(), nil
	}
	if c.BaseURL == "" {
		return "", fmt.Errorf("relative address %q without base URL", address)
	}
	base, err := url.Parse(c.BaseURL)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
