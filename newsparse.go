// Package newsparse extracts structured article records from news and forum
// pages. One fetched HTML document is mapped to one Article by applying a
// per-site adapter: selectors for the article parts plus optional hooks for
// URL normalization, category mapping, date splitting and comment retrieval.
//
// This package contains domain types, interfaces and the DOM-free parts of
// the engine (URL normalization, date splitting, category rule dispatch,
// comment pagination) following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., goquery/, sqlite/, rod/, jalaali/).
package newsparse
