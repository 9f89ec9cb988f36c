package provider

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/xcstrings-tools/xckit/config"
	"github.com/xcstrings-tools/xckit/credentials"
)

const youdaoEndpoint = "https://openapi.youdao.com/api"

// youdaoErrTooFrequent is the API's "requests too frequent" error code; it
// is the only API error worth retrying.
const youdaoErrTooFrequent = "411"

// Youdao is the Vendor-A adapter: SHA-256 signed POST with a bounded
// fixed-delay retry on rate limiting and transport failure.
type Youdao struct {
	// Endpoint is overridable for tests.
	Endpoint string
	client   *resty.Client
	retry    retryPolicy
	logf     Logf
}

// NewYoudao builds the Youdao adapter. It uses the runtime's Youdao-specific
// timeout and retry budget.
func NewYoudao(rt config.Runtime, logf Logf) *Youdao {
	return &Youdao{
		Endpoint: youdaoEndpoint,
		client:   newClient(rt.YoudaoTimeout),
		retry:    retryPolicy{maxAttempts: rt.MaxRetries, delay: 2 * time.Second},
		logf:     logf,
	}
}

// ID implements Translator.
func (y *Youdao) ID() string { return IDYoudao }

// youdaoSign computes the v3 request signature:
// SHA256(appKey + text + salt + curtime + appSecret), hex encoded.
func youdaoSign(appKey, text, salt, curtime, appSecret string) string {
	sum := sha256.Sum256([]byte(appKey + text + salt + curtime + appSecret))
	return hex.EncodeToString(sum[:])
}

type youdaoResponse struct {
	ErrorCode   string   `json:"errorCode"`
	Translation []string `json:"translation"`
}

// Translate implements Translator.
func (y *Youdao) Translate(ctx context.Context, text, apiLang string) string {
	creds, err := credentials.LoadYoudao()
	if err != nil || creds.AppKey == "" || creds.AppSecret == "" {
		y.logf.printf("youdao translate needs YOUDAO_APP_KEY and YOUDAO_APP_SECRET")
		return text
	}

	for attempt := 1; attempt <= y.retry.maxAttempts; attempt++ {
		// Fresh salt and timestamp per attempt; the signature covers both.
		salt := saltIn(1, 65536)
		curtime := strconv.FormatInt(time.Now().Unix(), 10)
		sign := youdaoSign(creds.AppKey, text, salt, curtime, creds.AppSecret)

		var result youdaoResponse
		resp, err := y.client.R().
			SetContext(ctx).
			SetFormData(map[string]string{
				"q":        text,
				"from":     "en",
				"to":       apiLang,
				"appKey":   creds.AppKey,
				"salt":     salt,
				"sign":     sign,
				"signType": "v3",
				"curtime":  curtime,
			}).
			SetResult(&result).
			Post(y.Endpoint)

		switch {
		case err != nil:
			y.logf.printf("youdao translate failed (attempt %d/%d): %v", attempt, y.retry.maxAttempts, err)
		case resp.StatusCode() != http.StatusOK:
			y.logf.printf("youdao HTTP error (attempt %d/%d): %d", attempt, y.retry.maxAttempts, resp.StatusCode())
		case result.ErrorCode == "0" && len(result.Translation) > 0:
			return result.Translation[0]
		case result.ErrorCode == youdaoErrTooFrequent:
			y.logf.printf("youdao requests too frequent (attempt %d/%d)", attempt, y.retry.maxAttempts)
		default:
			// Any other API error is not transient; give up immediately.
			y.logf.printf("youdao API error: %s", result.ErrorCode)
			return text
		}

		if attempt < y.retry.maxAttempts {
			if err := y.retry.sleep(ctx); err != nil {
				return text
			}
		}
	}
	return text
}
