// Package provider implements the remote translation backends: the
// unauthenticated Google web endpoint, Youdao (SHA-256 request signing with
// bounded retry), Baidu (MD5 request signing), and Tencent Cloud
// (TC3-HMAC-SHA256 request signing).
//
// Every adapter is stateless per call and shares one failure contract:
// Translate never returns an error. On any failure (missing credentials,
// transport error, non-success status, malformed response) it logs a
// diagnostic and returns the input text unchanged. Callers detect failure
// by value equality with the input.
package provider

import (
	"context"
	"math/rand"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/xcstrings-tools/xckit/config"
)

// Provider IDs, used for selection and locale-code mapping.
const (
	IDGoogle  = "google"
	IDYoudao  = "youdao"
	IDBaidu   = "baidu"
	IDTencent = "tencent"
)

// IDs lists all known provider IDs in menu order.
var IDs = []string{IDGoogle, IDYoudao, IDBaidu, IDTencent}

// Known reports whether id names a provider.
func Known(id string) bool {
	for _, known := range IDs {
		if id == known {
			return true
		}
	}
	return false
}

// Translator is the capability every backend implements.
type Translator interface {
	// ID returns the provider identifier.
	ID() string
	// Translate converts text into the provider-specific target language
	// code. On failure it returns text unchanged.
	Translate(ctx context.Context, text, apiLang string) string
}

// Logf is the diagnostic sink adapters report through. A nil Logf silences
// the adapter.
type Logf func(format string, args ...any)

func (l Logf) printf(format string, args ...any) {
	if l != nil {
		l(format, args...)
	}
}

// userAgent mirrors a desktop browser; the unauthenticated endpoint
// rejects obvious bot agents.
const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

func newClient(timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
}

// retryPolicy is a bounded fixed-delay retry, executed by an explicit loop
// inside the adapter that owns it.
type retryPolicy struct {
	maxAttempts int
	delay       time.Duration
}

// sleep waits out the retry delay, honoring context cancellation.
func (p retryPolicy) sleep(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(p.delay):
		return nil
	}
}

// saltIn returns a fresh random salt in [lo, hi] as a decimal string.
func saltIn(lo, hi int) string {
	return strconv.Itoa(lo + rand.Intn(hi-lo+1))
}

// All constructs the full provider set wired to the given runtime tuning
// and diagnostic sink.
func All(rt config.Runtime, logf Logf) map[string]Translator {
	return map[string]Translator{
		IDGoogle:  NewGoogle(rt, logf),
		IDYoudao:  NewYoudao(rt, logf),
		IDBaidu:   NewBaidu(rt, logf),
		IDTencent: NewTencent(rt, logf),
	}
}
