package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"github.com/fwojciec/newsparse"
	"golang.org/x/net/publicsuffix"
	"golang.org/x/time/rate"
)

var _ newsparse.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter throttles requests per site. Hosts sharing a registrable
// domain (www.irna.ir, irna.ir, api.irna.ir) share one token bucket, so
// comment endpoints count against the site that serves the article.
type DomainLimiter struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	rates    map[string]float64
	rps      float64
}

// NewDomainLimiter creates a DomainLimiter allowing rps requests per second
// to each site, with a burst of 1.
func NewDomainLimiter(rps float64) *DomainLimiter {
	return &DomainLimiter{
		limiters: make(map[string]*rate.Limiter),
		rates:    make(map[string]float64),
		rps:      rps,
	}
}

// SetRate overrides the rate of the site owning host. It applies to
// buckets created afterwards and to the existing one.
func (d *DomainLimiter) SetRate(host string, rps float64) {
	key := siteKey(host)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.rates[key] = rps
	if l, ok := d.limiters[key]; ok {
		l.SetLimit(rate.Limit(rps))
	}
}

// Wait blocks until the site owning host may receive another request.
func (d *DomainLimiter) Wait(ctx context.Context, host string) error {
	key := siteKey(host)

	d.mu.Lock()
	limiter, ok := d.limiters[key]
	if !ok {
		rps, ok := d.rates[key]
		if !ok {
			rps = d.rps
		}
		limiter = rate.NewLimiter(rate.Limit(rps), 1)
		d.limiters[key] = limiter
	}
	d.mu.Unlock()

	return limiter.Wait(ctx)
}

// siteKey reduces host to its registrable domain. IP addresses and hosts
// without a public suffix are used as is.
func siteKey(host string) string {
	host = strings.TrimSuffix(strings.ToLower(host), ".")
	if net.ParseIP(host) != nil {
		return host
	}
	if key, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return key
	}
	return host
}
