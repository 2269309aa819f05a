package httpclient

import (
	"fmt"
	"net"
	"net/http"
	"time"
)

// DefaultMaxRedirects bounds how many redirects a health probe follows.
const DefaultMaxRedirects = 5

// Config tunes the client used to probe MCP endpoints. Timeout covers the
// whole exchange including the body read; a context deadline can cut it short.
type Config struct {
	Timeout time.Duration

	DialTimeout    time.Duration
	TLSHandshake   time.Duration
	ResponseHeader time.Duration

	// Probes hit each endpoint once, so the idle pool stays small.
	MaxIdleConns    int
	IdleConnTimeout time.Duration

	MaxRedirects int
	UserAgent    string
}

// DefaultConfig matches a one-shot health probe: 5s end to end.
func DefaultConfig() Config {
	return ProbeConfig(5 * time.Second)
}

// ProbeConfig derives per-phase timeouts from the overall probe timeout.
func ProbeConfig(timeout time.Duration) Config {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	phase := timeout
	if phase > 3*time.Second {
		phase = 3 * time.Second
	}
	return Config{
		Timeout:         timeout,
		DialTimeout:     phase,
		TLSHandshake:    phase,
		ResponseHeader:  timeout,
		MaxIdleConns:    4,
		IdleConnTimeout: 30 * time.Second,
		MaxRedirects:    DefaultMaxRedirects,
		UserAgent:       "unified-mcp",
	}
}

func New(cfg Config) *http.Client {
	dialer := &net.Dialer{Timeout: cfg.DialTimeout}

	var rt http.RoundTripper = &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConns,
		IdleConnTimeout:       cfg.IdleConnTimeout,
		TLSHandshakeTimeout:   cfg.TLSHandshake,
		ResponseHeaderTimeout: cfg.ResponseHeader,
	}
	if cfg.UserAgent != "" {
		rt = userAgentTransport{next: rt, ua: cfg.UserAgent}
	}

	maxRedirects := cfg.MaxRedirects
	return &http.Client{
		Transport: rt,
		Timeout:   cfg.Timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("stopped after %d redirects", maxRedirects)
			}
			return nil
		},
	}
}

// userAgentTransport sets User-Agent unless the endpoint config already did.
type userAgentTransport struct {
	next http.RoundTripper
	ua   string
}

func (t userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return t.next.RoundTrip(req)
	}
	r := req.Clone(req.Context())
	r.Header.Set("User-Agent", t.ua)
	return t.next.RoundTrip(r)
}
