package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/bloom"
	"github.com/fwojciec/newsparse/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Registry  *goquery.Registry
	Extractor newsparse.ArticleExtractor
	Converter newsparse.Converter

	// Fetcher retrieves static pages; Browser renders pages of adapters
	// marked JSRendered. Browser is nil when no requested site needs it.
	Fetcher newsparse.Fetcher
	Browser newsparse.Fetcher

	// Sessions acquires session cookies for challenge-protected sites.
	Sessions *Sessions

	// Seen drops repeated URLs within one run. History remembers URLs
	// extracted by earlier runs. Either may be nil.
	Seen    *bloom.Filter
	History *bloom.Filter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    string        `help:"Config file (default $NEWSPARSE_CONFIG or ~/.newsparse/config.yaml)" type:"path"`
	Verbose   bool          `short:"v" help:"Log every fetch and extraction"`
	Timeout   time.Duration `help:"Request timeout"`
	Proxy     string        `help:"HTTP proxy URL"`
	Insecure  bool          `help:"Skip TLS certificate verification"`
	UserAgent string        `name:"user-agent" help:"User agent sent with requests"`
	RateLimit float64       `name:"rate-limit" help:"Requests per second per domain"`

	Extract   ExtractCmd   `cmd:"" help:"Extract articles from URLs"`
	Normalize NormalizeCmd `cmd:"" help:"Print the canonical form of article URLs"`
	Sites     SitesCmd     `cmd:"" help:"List supported sites"`
	Category  CategoryCmd  `cmd:"" help:"Map a raw breadcrumb to a category using a site's rules"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URLs        []string `arg:"" name:"url" help:"Article URLs"`
	Out         string   `short:"o" help:"Write markdown files under this directory instead of stdout" type:"path"`
	Name        string   `default:"articles" help:"Output directory name inside --out"`
	Format      string   `short:"f" enum:"json,markdown" default:"json" help:"Stdout format (json, markdown)"`
	Concurrency int      `short:"c" help:"Concurrent extraction limit (default from config, else 4)"`
	Generic     bool     `short:"g" help:"Extract pages of unsupported sites with the generic extractor"`
	NoComments  bool     `name:"no-comments" help:"Skip comment retrieval"`
	History     string   `help:"Bloom filter file remembering extracted URLs across runs" type:"path"`
}

// NormalizeCmd is the "normalize" subcommand.
type NormalizeCmd struct {
	URLs []string `arg:"" name:"url" help:"URLs to normalize"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// CategoryCmd is the "category" subcommand.
type CategoryCmd struct {
	Site string `arg:"" help:"Site name as listed by 'sites'"`
	Raw  string `arg:"" help:"Raw breadcrumb text, segments separated by /"`
}
