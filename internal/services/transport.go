package services

import (
	"net/http"

	"github.com/desertthunder/genregenie/internal/shared"
	"golang.org/x/time/rate"
)

// rateLimitedTransport waits on a [rate.Limiter] before each round trip.
type rateLimitedTransport struct {
	base    http.RoundTripper
	limiter *rate.Limiter
}

// NewRateLimitedTransport wraps base so that at most perSecond requests start each second.
//
// base defaults to [http.DefaultTransport]; a non-positive perSecond disables pacing.
func NewRateLimitedTransport(base http.RoundTripper, perSecond float64) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if perSecond <= 0 {
		return base
	}
	return &rateLimitedTransport{
		base:    base,
		limiter: rate.NewLimiter(rate.Limit(perSecond), 1),
	}
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.base.RoundTrip(req)
}

// NewHTTPClient builds the client shared by Spotify calls: every request carries the configured
// timeout and is paced by the configured rate limit.
func NewHTTPClient(config shared.HTTPConfig) *http.Client {
	return &http.Client{
		Timeout:   config.Timeout.Duration,
		Transport: NewRateLimitedTransport(http.DefaultTransport, config.RateLimit),
	}
}
