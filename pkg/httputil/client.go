// Package httputil provides shared HTTP utilities with connection pooling
// and safe response handling for the lurebox gateway's outbound calls
// (final-report webhooks and the remote reply generator).
package httputil

import (
	"io"
	"net"
	"net/http"
	"sync"
	"time"
)

// MaxResponseSize is the default maximum size for reading HTTP response
// bodies. External services are untrusted; a misbehaving endpoint must not
// be able to exhaust memory.
const MaxResponseSize = 2 * 1024 * 1024 // 2MB

// Shared transport with connection pooling. Safe for concurrent use;
// reusing TCP connections matters because report delivery and remote
// generation both hit the same hosts repeatedly.
var sharedTransport = &http.Transport{
	Proxy: http.ProxyFromEnvironment,
	DialContext: (&net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}).DialContext,
	ForceAttemptHTTP2:     true,
	MaxIdleConns:          100,
	MaxIdleConnsPerHost:   10,
	IdleConnTimeout:       90 * time.Second,
	TLSHandshakeTimeout:   10 * time.Second,
	ExpectContinueTimeout: 1 * time.Second,
}

// TimeoutTier defines standard timeout categories.
type TimeoutTier int

const (
	// TierFast for health checks and webhook posts (10s)
	TierFast TimeoutTier = iota
	// TierMedium for standard API and LLM calls (30s)
	TierMedium
)

var timeoutDurations = map[TimeoutTier]time.Duration{
	TierFast:   10 * time.Second,
	TierMedium: 30 * time.Second,
}

var (
	clientFast   *http.Client
	clientMedium *http.Client
	clientOnce   sync.Once
)

func initClients() {
	clientFast = &http.Client{
		Timeout:   timeoutDurations[TierFast],
		Transport: sharedTransport,
	}
	clientMedium = &http.Client{
		Timeout:   timeoutDurations[TierMedium],
		Transport: sharedTransport,
	}
}

// Client returns a shared HTTP client for the given timeout tier. Use these
// instead of constructing http.Client per call site so the connection pool
// is actually shared.
func Client(tier TimeoutTier) *http.Client {
	clientOnce.Do(initClients)
	if tier == TierFast {
		return clientFast
	}
	return clientMedium
}

// FastClient returns a client with a 10s timeout.
func FastClient() *http.Client {
	return Client(TierFast)
}

// MediumClient returns a client with a 30s timeout.
func MediumClient() *http.Client {
	return Client(TierMedium)
}

// ClientWithTimeout returns a client with a caller-chosen timeout on the
// shared transport, for collaborators with configured deadlines.
func ClientWithTimeout(d time.Duration) *http.Client {
	return &http.Client{Timeout: d, Transport: sharedTransport}
}

// ReadResponseBody reads an HTTP response body with a size limit.
func ReadResponseBody(r io.Reader, maxSize int64) ([]byte, error) {
	if maxSize <= 0 {
		maxSize = MaxResponseSize
	}
	return io.ReadAll(io.LimitReader(r, maxSize))
}

// DrainAndClose drains and closes a response body so the underlying
// connection returns to the pool.
func DrainAndClose(body io.ReadCloser) {
	if body != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxResponseSize))
		_ = body.Close()
	}
}
