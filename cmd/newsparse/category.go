package main

import (
	"encoding/json"

	"github.com/fwojciec/newsparse"
)

// Run executes the category command.
func (c *CategoryCmd) Run(deps *Dependencies) error {
	a, ok := deps.Registry.Get(c.Site)
	if !ok {
		return newsparse.Errorf(newsparse.ENOTFOUND, "unknown site %q", c.Site)
	}

	mapper := a.Category.Mapper
	category := mapper.MapCategory(c.Raw)
	normalized := newsparse.NormalizeCategory(c.Raw, mapper.RootLabels, mapper.StripPrefixes)
	if mapper.Normalize != nil {
		normalized = mapper.Normalize(c.Raw)
	}

	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	return enc.Encode(struct {
		Site       string             `json:"site"`
		Normalized string             `json:"normalized"`
		Category   newsparse.Category `json:"category"`
	}{
		Site:       a.Name,
		Normalized: normalized,
		Category:   category,
	})
}
