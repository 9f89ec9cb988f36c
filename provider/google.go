package provider

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/xcstrings-tools/xckit/config"
)

// googleEndpoint is the free web-translate endpoint. No credentials.
const googleEndpoint = "https://translate.googleapis.com/translate_a/single"

// Google is the unauthenticated web-translate adapter: one GET per call,
// no retry.
type Google struct {
	// Endpoint is overridable for tests.
	Endpoint string
	client   *resty.Client
	logf     Logf
}

// NewGoogle builds the Google adapter with the runtime's request timeout.
func NewGoogle(rt config.Runtime, logf Logf) *Google {
	return &Google{
		Endpoint: googleEndpoint,
		client:   newClient(rt.RequestTimeout),
		logf:     logf,
	}
}

// ID implements Translator.
func (g *Google) ID() string { return IDGoogle }

// Translate implements Translator. Source language is locked to the
// catalog's source (en).
func (g *Google) Translate(ctx context.Context, text, apiLang string) string {
	resp, err := g.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     "en",
			"tl":     apiLang,
			"dt":     "t",
			"q":      text,
		}).
		Get(g.Endpoint)
	if err != nil {
		g.logf.printf("google translate error: %v", err)
		return text
	}
	if resp.StatusCode() != http.StatusOK {
		if resp.StatusCode() == http.StatusTooManyRequests {
			g.logf.printf("google translate rate limited: HTTP %d", resp.StatusCode())
		} else {
			g.logf.printf("google translate failed: HTTP %d", resp.StatusCode())
		}
		return text
	}

	translated, ok := parseGoogleBody(resp.Body())
	if !ok {
		g.logf.printf("google translate failed: unexpected response shape")
		return text
	}
	return translated
}

// parseGoogleBody digs the translation out of the endpoint's nested-array
// response: body[0][0][0].
func parseGoogleBody(body []byte) (string, bool) {
	var root []any
	if err := json.Unmarshal(body, &root); err != nil || len(root) == 0 {
		return "", false
	}
	sentences, ok := root[0].([]any)
	if !ok || len(sentences) == 0 {
		return "", false
	}
	first, ok := sentences[0].([]any)
	if !ok || len(first) == 0 {
		return "", false
	}
	s, ok := first[0].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
