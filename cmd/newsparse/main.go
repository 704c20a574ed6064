package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/bloom"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/fwojciec/newsparse/hijri"
	"github.com/fwojciec/newsparse/htmltomarkdown"
	nphttp "github.com/fwojciec/newsparse/http"
	"github.com/fwojciec/newsparse/jalaali"
	"github.com/fwojciec/newsparse/readability"
	"github.com/fwojciec/newsparse/rod"
	"github.com/fwojciec/newsparse/sites"
	npslog "github.com/fwojciec/newsparse/slog"
	"github.com/fwojciec/newsparse/sqlite"
	"github.com/fwojciec/newsparse/trafilatura"
	"github.com/fwojciec/newsparse/yaml"
)

// DefaultRateLimit is the per-domain request rate used when neither the
// config nor the flags set one.
const DefaultRateLimit = 2.0

// DefaultConcurrency is the extraction concurrency used when neither the
// config nor the flags set one.
const DefaultConcurrency = 4

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	m := NewMain()

	err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", message(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Config file path used when --config is not given. A missing file at
	// this path is not an error.
	ConfigPath string

	// Cookie database path. Set before calling Run().
	DBPath string

	// SQLite database holding session cookies. Opened only when a
	// requested site needs a session cookie.
	DB *sqlite.DB

	closers []func() error
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPath: yaml.DefaultConfigPath(),
		DBPath:     defaultDBPath(),
	}
}

// Close releases everything opened by Run, newest first.
func (m *Main) Close() error {
	var errs []error
	for i := len(m.closers) - 1; i >= 0; i-- {
		errs = append(errs, m.closers[i]())
	}
	m.closers = nil
	if m.DB != nil {
		errs = append(errs, m.DB.Close())
		m.DB = nil
	}
	return errors.Join(errs...)
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("newsparse"),
		kong.Description("Extract structured articles from Persian news sites and forums"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'newsparse --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := m.loadConfig(cli.Config)
	if err != nil {
		return err
	}
	applyFlags(cfg, cli)

	deps.Logger = newLogger(stderr, cli.Verbose)
	deps.Registry, err = newRegistry(cfg)
	if err != nil {
		return err
	}

	if strings.HasPrefix(kongCtx.Command(), "extract") {
		defer m.Close()
		if err := m.wireExtract(deps, &cli.Extract, cfg); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// loadConfig reads the config file. Only an explicitly requested file
// must exist.
func (m *Main) loadConfig(explicit string) (*yaml.Config, error) {
	path := explicit
	if path == "" {
		path = m.ConfigPath
	}
	if path == "" {
		return &yaml.Config{}, nil
	}

	cfg, err := yaml.LoadConfig(path)
	if newsparse.ErrorCode(err) == newsparse.ENOTFOUND && explicit == "" {
		return &yaml.Config{}, nil
	}
	return cfg, err
}

// applyFlags lets command-line flags override config values.
func applyFlags(cfg *yaml.Config, cli *CLI) {
	if cli.Timeout > 0 {
		cfg.Timeout = cli.Timeout
	}
	if cli.Proxy != "" {
		cfg.Proxy = cli.Proxy
	}
	if cli.Insecure {
		cfg.Insecure = true
	}
	if cli.UserAgent != "" {
		cfg.UserAgent = cli.UserAgent
	}
	if cli.RateLimit > 0 {
		cfg.RateLimit = cli.RateLimit
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// newRegistry holds the built-in adapters plus those of the config's
// adapter files. A file adapter replaces a built-in one of the same name.
func newRegistry(cfg *yaml.Config) (*goquery.Registry, error) {
	registry := sites.NewRegistry()
	for _, path := range cfg.Adapters {
		adapters, err := yaml.LoadAdapters(path)
		if err != nil {
			return nil, err
		}
		for _, a := range adapters {
			registry.Register(a)
		}
	}
	return registry, nil
}

// wireExtract builds the transport, browser, cookie and extraction
// services the extract command needs.
func (m *Main) wireExtract(deps *Dependencies, cmd *ExtractCmd, cfg *yaml.Config) error {
	logger := deps.Logger

	rateLimit := cfg.RateLimit
	if rateLimit == 0 {
		rateLimit = DefaultRateLimit
	}
	limiter := nphttp.NewDomainLimiter(rateLimit)
	for host, rps := range cfg.SiteRates {
		limiter.SetRate(host, rps)
	}
	opts := []nphttp.Option{
		nphttp.WithLogger(logger),
		nphttp.WithLimiter(limiter),
	}
	if cfg.Timeout > 0 {
		opts = append(opts, nphttp.WithTimeout(cfg.Timeout))
	}
	if cfg.Proxy != "" {
		proxy, err := url.Parse(cfg.Proxy)
		if err != nil || proxy.Host == "" {
			return newsparse.Errorf(newsparse.EINVALID, "invalid proxy URL %q", cfg.Proxy)
		}
		opts = append(opts, nphttp.WithProxy(proxy))
	}
	if cfg.Insecure {
		opts = append(opts, nphttp.WithInsecureTLS())
	}
	if cfg.UserAgent != "" {
		opts = append(opts, nphttp.WithUserAgent(cfg.UserAgent))
	}
	client := nphttp.NewClient(opts...)
	m.closers = append(m.closers, client.Close)

	deps.Fetcher = npslog.NewLoggingFetcher(client, logger)
	deps.Converter = htmltomarkdown.NewConverter()

	exOpts := []goquery.Option{
		goquery.WithRequester(npslog.NewLoggingRequester(client, logger)),
		goquery.WithDateConverter(newsparse.CalendarConverters{
			newsparse.CalendarJalali: jalaali.NewConverter(),
			newsparse.CalendarHijri:  hijri.NewConverter(),
		}),
		goquery.WithLogger(logger),
	}
	if cmd.NoComments {
		exOpts = append(exOpts, goquery.WithoutComments())
	}
	if cmd.Generic {
		generic := goquery.NewGenericExtractor(
			[]newsparse.ContentExtractor{trafilatura.NewExtractor(), readability.NewExtractor()},
			goquery.WithGenericLogger(logger),
		)
		exOpts = append(exOpts, goquery.WithFallback(generic))
	}
	deps.Extractor = npslog.NewLoggingExtractor(goquery.NewExtractor(deps.Registry, exOpts...), logger)

	if cmd.Concurrency <= 0 {
		cmd.Concurrency = cfg.Concurrency
	}
	if cmd.Concurrency <= 0 {
		cmd.Concurrency = DefaultConcurrency
	}

	if err := m.wireBrowser(deps, cmd.URLs, cfg, client); err != nil {
		return err
	}

	deps.Seen = bloom.NewFilter(uint(max(len(cmd.URLs), 1000)), 0.001)
	if cmd.History != "" {
		history, err := loadHistory(cmd.History)
		if err != nil {
			return err
		}
		deps.History = history
		m.closers = append(m.closers, func() error { return saveHistory(cmd.History, history) })
	}
	return nil
}

// wireBrowser launches Chrome only when a requested site renders with
// JavaScript or sits behind a bot challenge.
func (m *Main) wireBrowser(deps *Dependencies, urls []string, cfg *yaml.Config, jar CookieJar) error {
	var needBrowser, needCookies bool
	for _, u := range urls {
		if a, ok := deps.Registry.Lookup(u); ok {
			needBrowser = needBrowser || a.JSRendered
			needCookies = needCookies || a.NeedsSessionCookie
		}
	}
	if !needBrowser && !needCookies {
		return nil
	}

	var bmOpts []rod.ManagerOption
	if cfg.Proxy != "" {
		bmOpts = append(bmOpts, rod.WithBrowserProxy(cfg.Proxy))
	}
	if cfg.UserAgent != "" {
		bmOpts = append(bmOpts, rod.WithBrowserUserAgent(cfg.UserAgent))
	}
	manager, err := rod.NewBrowserManager(bmOpts...)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
		return fmt.Errorf("failed to start browser: %w", err)
	}
	m.closers = append(m.closers, manager.Close)

	if needBrowser {
		var fOpts []rod.FetcherOption
		fOpts = append(fOpts, rod.WithManager(manager))
		if cfg.Timeout > 0 {
			fOpts = append(fOpts, rod.WithFetchTimeout(cfg.Timeout))
		}
		fetcher, err := rod.NewFetcher(fOpts...)
		if err != nil {
			return err
		}
		deps.Browser = npslog.NewLoggingFetcher(fetcher, deps.Logger)
	}

	if needCookies {
		dbPath := m.DBPath
		if cfg.CookieDB != "" {
			dbPath = cfg.CookieDB
		}
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Set NEWSPARSE_DB to use a different cookie database path")
			return fmt.Errorf("failed to open cookie database at %q: %w", dbPath, err)
		}
		deps.Sessions = &Sessions{
			Source: npslog.NewLoggingCookieSource(rod.NewCookieSource(manager), deps.Logger),
			Store:  sqlite.NewCookieStore(m.DB),
			Jar:    jar,
		}
	}
	return nil
}

// loadHistory reads the history filter, starting a fresh one when the
// file does not exist yet.
func loadHistory(path string) (*bloom.Filter, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return bloom.NewFilter(100_000, 0.001), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	filter, err := bloom.Load(f)
	if err != nil {
		return nil, newsparse.Errorf(newsparse.EINVALID, "history file %s is corrupt: %v", path, err)
	}
	return filter, nil
}

// saveHistory replaces the history file atomically.
func saveHistory(path string, filter *bloom.Filter) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if err := filter.Save(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func defaultDBPath() string {
	if path := os.Getenv("NEWSPARSE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "newsparse.db"
	}
	dir := filepath.Join(home, ".newsparse")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "cookies.db")
}
