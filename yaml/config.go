// Package yaml reads the newsparse configuration file and declarative
// adapter definitions.
package yaml

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/newsparse"
	"gopkg.in/yaml.v3"
)

// Config holds process-wide settings. Zero fields keep the built-in
// defaults of the components they configure.
type Config struct {
	Timeout     time.Duration `yaml:"timeout"`
	Proxy       string        `yaml:"proxy"`
	Insecure    bool          `yaml:"insecure"`
	UserAgent   string        `yaml:"user_agent"`
	Concurrency int           `yaml:"concurrency"`

	// RateLimit is the number of requests per second allowed per domain.
	RateLimit float64 `yaml:"rate_limit"`

	// SiteRates overrides RateLimit for individual hosts.
	SiteRates map[string]float64 `yaml:"site_rates"`

	// CookieDB is the path of the session-cookie database.
	CookieDB string `yaml:"cookie_db"`

	// Adapters lists adapter definition files. Relative paths resolve
	// against the directory of the config file.
	Adapters []string `yaml:"adapters"`
}

// DefaultConfigPath returns $NEWSPARSE_CONFIG or ~/.newsparse/config.yaml.
func DefaultConfigPath() string {
	if path := os.Getenv("NEWSPARSE_CONFIG"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsparse.yaml"
	}
	return filepath.Join(home, ".newsparse", "config.yaml")
}

// ReadConfig decodes a config document. Unknown keys are rejected.
func ReadConfig(r io.Reader) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return &cfg, nil
		}
		return nil, newsparse.Errorf(newsparse.EINVALID, "config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads the config file at path. A missing file yields
// ENOTFOUND so callers can fall back to defaults.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, newsparse.Errorf(newsparse.ENOTFOUND, "config file %s not found", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	cfg, err := ReadConfig(f)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	for i, p := range cfg.Adapters {
		if !filepath.IsAbs(p) {
			cfg.Adapters[i] = filepath.Join(dir, p)
		}
	}
	return cfg, nil
}

// Validate reports settings that cannot be applied.
func (c *Config) Validate() error {
	if c.Timeout < 0 {
		return newsparse.Errorf(newsparse.EINVALID, "config: timeout must not be negative")
	}
	if c.RateLimit < 0 {
		return newsparse.Errorf(newsparse.EINVALID, "config: rate_limit must not be negative")
	}
	for host, rps := range c.SiteRates {
		if rps <= 0 {
			return newsparse.Errorf(newsparse.EINVALID, "config: site_rates[%s] must be positive", host)
		}
	}
	if c.Concurrency < 0 {
		return newsparse.Errorf(newsparse.EINVALID, "config: concurrency must not be negative")
	}
	return nil
}
