package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient("https://api.example.com", 5*time.Second, 0)
//	resp, err := client.R().Get("/status")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a resty client bound to baseURL. A positive
// ratePerSecond throttles outgoing requests through an x/time/rate limiter:
// a request over the rate waits for a token until its context is done.
func NewHTTPClient(baseURL string, timeout time.Duration, ratePerSecond float64) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	if ratePerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(ratePerSecond), 1)
		client.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			return limiter.Wait(r.Context())
		})
	}

	return &HTTPClient{Client: client}
}
