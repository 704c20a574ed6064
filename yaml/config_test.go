package yaml_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Parallel()

	t.Run("decodes all settings", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ReadConfig(strings.NewReader(`
timeout: 15s
proxy: http://127.0.0.1:8080
insecure: true
user_agent: newsparse/1.0
concurrency: 4
rate_limit: 0.5
site_rates:
  www.irna.ir: 0.25
cookie_db: /tmp/cookies.db
adapters:
  - sites.yaml
`))

		require.NoError(t, err)
		assert.Equal(t, &yaml.Config{
			Timeout:     15 * time.Second,
			Proxy:       "http://127.0.0.1:8080",
			Insecure:    true,
			UserAgent:   "newsparse/1.0",
			Concurrency: 4,
			RateLimit:   0.5,
			SiteRates:   map[string]float64{"www.irna.ir": 0.25},
			CookieDB:    "/tmp/cookies.db",
			Adapters:    []string{"sites.yaml"},
		}, cfg)
	})

	t.Run("empty document yields defaults", func(t *testing.T) {
		t.Parallel()

		cfg, err := yaml.ReadConfig(strings.NewReader(""))

		require.NoError(t, err)
		assert.Equal(t, &yaml.Config{}, cfg)
	})

	t.Run("unknown key is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadConfig(strings.NewReader("timout: 10s\n"))

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("negative rate limit is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadConfig(strings.NewReader("rate_limit: -1\n"))

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})

	t.Run("zero site rate is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.ReadConfig(strings.NewReader("site_rates:\n  www.irna.ir: 0\n"))

		assert.Equal(t, newsparse.EINVALID, newsparse.ErrorCode(err))
	})
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.LoadConfig(filepath.Join(t.TempDir(), "config.yaml"))

		assert.Equal(t, newsparse.ENOTFOUND, newsparse.ErrorCode(err))
	})

	t.Run("adapter paths resolve against the config directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("adapters: [sites.yaml, /etc/newsparse/extra.yaml]\n"), 0o644))

		cfg, err := yaml.LoadConfig(path)

		require.NoError(t, err)
		assert.Equal(t, []string{filepath.Join(dir, "sites.yaml"), "/etc/newsparse/extra.yaml"}, cfg.Adapters)
	})
}

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("NEWSPARSE_CONFIG", "/custom/config.yaml")

	assert.Equal(t, "/custom/config.yaml", yaml.DefaultConfigPath())
}
