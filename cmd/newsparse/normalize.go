package main

import (
	"fmt"

	"github.com/fwojciec/newsparse"
)

// Run executes the normalize command. Rejected URLs are reported on
// stderr and do not stop the remaining ones.
func (c *NormalizeCmd) Run(deps *Dependencies) error {
	rejected := 0
	for _, rawURL := range c.URLs {
		a, ok := deps.Registry.Lookup(rawURL)
		if !ok {
			rejected++
			fmt.Fprintf(deps.Stderr, "rejected: %s: no adapter for this host\n", rawURL)
			continue
		}

		normalized, err := a.URL.Normalize(rawURL)
		if err != nil {
			rejected++
			fmt.Fprintf(deps.Stderr, "rejected: %s: %s\n", rawURL, newsparse.ErrorMessage(err))
			continue
		}
		if a.URL.IgnoresContent(normalized) {
			rejected++
			fmt.Fprintf(deps.Stderr, "ignored: %s\n", normalized)
			continue
		}
		fmt.Fprintln(deps.Stdout, normalized)
	}

	if rejected > 0 {
		return newsparse.Errorf(newsparse.ENOTARTICLE, "%d of %d URLs rejected", rejected, len(c.URLs))
	}
	return nil
}
