package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	for _, name := range deps.Registry.List() {
		a, _ := deps.Registry.Get(name)

		var flags []string
		if a.NeedsSessionCookie {
			flags = append(flags, "session-cookie")
		}
		if a.JSRendered {
			flags = append(flags, "browser")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", name, a.URL.Host, strings.Join(flags, ","))
	}
	return tw.Flush()
}
