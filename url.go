package newsparse

import (
	"net/url"
	"path"
	"sort"
	"strings"
)

// DefaultInvalidStartPaths are path prefixes that never hold an article on
// any site. Adapters append their own through URLRules.InvalidStartPaths.
var DefaultInvalidStartPaths = []string{
	"/tag", "/tags", "/search", "/login", "/register", "/signin", "/signup",
	"/user", "/users", "/profile", "/author", "/authors", "/feed", "/rss",
	"/print", "/cdn-cgi", "/wp-admin", "/wp-login.php", "/wp-content",
	"/wp-includes", "/wp-json", "/xmlrpc.php", "/cart", "/checkout",
	"/account", "/newsletter", "/ads", "/redirect",
}

// staticExtensions are file types that are never article pages.
var staticExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".webp": {}, ".svg": {},
	".bmp": {}, ".ico": {}, ".tif": {}, ".tiff": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".zip": {}, ".rar": {}, ".7z": {}, ".gz": {}, ".tar": {}, ".apk": {}, ".exe": {},
	".mp3": {}, ".mp4": {}, ".m4a": {}, ".ogg": {}, ".wav": {}, ".avi": {}, ".mkv": {},
	".webm": {}, ".flv": {}, ".wmv": {},
	".css": {}, ".js": {}, ".json": {}, ".xml": {}, ".txt": {}, ".woff": {}, ".woff2": {}, ".ttf": {},
}

// trackingParams are query parameters stripped during normalization.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"utm_id":       {},
	"fbclid":       {},
	"gclid":        {},
	"gclsrc":       {},
	"dclid":        {},
	"msclkid":      {},
	"yclid":        {},
	"_gl":          {},
	"ref":          {},
}

var defaultPorts = map[string]string{
	"http":  "80",
	"https": "443",
}

// URLRules configures how one site's URLs are canonicalized and validated.
type URLRules struct {
	// Host is the site host as it appears in canonical URLs
	// (e.g. "www.irna.ir"). Requests to the host with or without "www."
	// are accepted and rewritten to it.
	Host string

	// CanonicalHost replaces Host in normalized URLs when set.
	CanonicalHost string

	// Scheme forces "http" or "https". Empty keeps the request scheme.
	Scheme string

	// RemoveWWW strips a leading "www." from the normalized host.
	RemoveWWW bool

	// BasePath is a locale prefix the site lives under (e.g. "/fa").
	// Repeated occurrences are collapsed into one.
	BasePath string

	// InvalidStartPaths extend DefaultInvalidStartPaths.
	InvalidStartPaths []string

	// ValidPathItems are path segments that introduce an article id
	// (e.g. "news"). The path is collapsed to "/<item>/<id>".
	ValidPathItems []string

	// PathCheckIndex is the number of path segments a listing page has.
	// Article URLs must carry more segments than that. Zero disables
	// the check.
	PathCheckIndex int

	// ValidDomains are hosts accepted as aliases of Host.
	ValidDomains []string

	// IgnoreContentOnPath lists prefixes of URLs that belong to the site
	// but whose pages are not extracted.
	IgnoreContentOnPath []string

	// Rewrite adjusts the URL after all other rules. It must be
	// idempotent.
	Rewrite func(u *url.URL)
}

// Normalize canonicalizes rawURL. It returns ENOTARTICLE when the URL does
// not belong to the site or cannot point at an article.
func (r URLRules) Normalize(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", Errorf(ENOTARTICLE, "unparseable url %q", rawURL)
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", Errorf(ENOTARTICLE, "unsupported scheme in %q", rawURL)
	}

	host := strings.ToLower(u.Hostname())
	if !r.AcceptsHost(host) {
		return "", Errorf(ENOTARTICLE, "host %q does not belong to %s", host, r.Host)
	}

	p := cleanPath(u.Path)
	if prefix, ok := matchPrefix(p, DefaultInvalidStartPaths); ok {
		return "", Errorf(ENOTARTICLE, "path %s starts with invalid prefix %s", p, prefix)
	}
	if prefix, ok := matchPrefix(p, r.InvalidStartPaths); ok {
		return "", Errorf(ENOTARTICLE, "path %s starts with invalid prefix %s", p, prefix)
	}
	if _, ok := staticExtensions[strings.ToLower(path.Ext(p))]; ok {
		return "", Errorf(ENOTARTICLE, "path %s points at a static file", p)
	}

	p, err = r.collapsePath(p)
	if err != nil {
		return "", err
	}

	if r.Scheme != "" {
		scheme = r.Scheme
	}
	switch {
	case r.CanonicalHost != "":
		host = strings.ToLower(r.CanonicalHost)
	case r.Host != "":
		host = strings.ToLower(r.Host)
	}
	if r.RemoveWWW {
		host = strings.TrimPrefix(host, "www.")
	}
	if port := u.Port(); port != "" && port != defaultPorts[strings.ToLower(u.Scheme)] && port != defaultPorts[scheme] {
		host += ":" + port
	}

	out := &url.URL{
		Scheme:   scheme,
		Host:     host,
		Path:     p,
		RawQuery: cleanQuery(u.Query()),
	}
	if r.Rewrite != nil {
		r.Rewrite(out)
	}
	return out.String(), nil
}

// AcceptsHost reports whether host is the site host or one of its aliases,
// with or without "www.".
func (r URLRules) AcceptsHost(host string) bool {
	host = strings.TrimPrefix(strings.ToLower(host), "www.")
	if host == "" {
		return false
	}
	if host == strings.TrimPrefix(r.Host, "www.") || host == strings.TrimPrefix(r.CanonicalHost, "www.") {
		return true
	}
	for _, d := range r.ValidDomains {
		if host == strings.TrimPrefix(strings.ToLower(d), "www.") {
			return true
		}
	}
	return false
}

// IgnoresContent reports whether a normalized URL belongs to the site but
// must not be extracted.
func (r URLRules) IgnoresContent(normalized string) bool {
	u, err := url.Parse(normalized)
	if err != nil {
		return false
	}
	_, ok := matchPrefix(cleanPath(u.Path), r.IgnoreContentOnPath)
	return ok
}

// collapsePath applies BasePath, ValidPathItems and PathCheckIndex.
func (r URLRules) collapsePath(p string) (string, error) {
	segs := splitPath(p)

	var base []string
	if r.BasePath != "" {
		base = splitPath(r.BasePath)
		if len(base) > 0 && hasSegments(segs, base) {
			segs = segs[len(base):]
			for hasSegments(segs, base) {
				segs = segs[len(base):]
			}
		} else {
			base = nil
		}
	}

	if len(r.ValidPathItems) > 0 {
		for i, seg := range segs {
			if !containsString(r.ValidPathItems, seg) {
				continue
			}
			for i+1 < len(segs) && segs[i+1] == seg {
				i++
			}
			if i+1 >= len(segs) {
				return "", Errorf(ENOTARTICLE, "path %s is a listing page", p)
			}
			segs = []string{seg, segs[i+1]}
			break
		}
	}

	if r.PathCheckIndex > 0 && len(segs) <= r.PathCheckIndex {
		return "", Errorf(ENOTARTICLE, "path %s is a listing page", p)
	}

	all := append(append([]string{}, base...), segs...)
	if len(all) == 0 {
		return "/", nil
	}
	return "/" + strings.Join(all, "/"), nil
}

func cleanPath(p string) string {
	if p == "" || p == "/" {
		return "/"
	}
	p = path.Clean("/" + p)
	if p != "/" {
		p = strings.TrimRight(p, "/")
	}
	return p
}

func splitPath(p string) []string {
	var segs []string
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	return segs
}

func hasSegments(segs, prefix []string) bool {
	if len(segs) < len(prefix) {
		return false
	}
	for i := range prefix {
		if segs[i] != prefix[i] {
			return false
		}
	}
	return true
}

// matchPrefix reports the first prefix that p starts with on a segment
// boundary.
func matchPrefix(p string, prefixes []string) (string, bool) {
	lower := strings.ToLower(p)
	for _, prefix := range prefixes {
		prefix = strings.ToLower(prefix)
		if prefix == "" || prefix == "/" {
			continue
		}
		if !strings.HasPrefix(lower, prefix) {
			continue
		}
		if strings.HasSuffix(prefix, "/") || len(lower) == len(prefix) {
			return prefix, true
		}
		switch lower[len(prefix)] {
		case '/', '.', '-', '_':
			return prefix, true
		}
	}
	return "", false
}

// cleanQuery strips tracking parameters and sorts the rest.
func cleanQuery(values url.Values) string {
	keys := make([]string, 0, len(values))
	for key := range values {
		if _, ok := trackingParams[strings.ToLower(key)]; !ok {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return ""
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		vals := append([]string(nil), values[key]...)
		sort.Strings(vals)
		for _, val := range vals {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(val))
		}
	}
	return b.String()
}
