package provider

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/xcstrings-tools/xckit/config"
	"github.com/xcstrings-tools/xckit/credentials"
)

const tencentEndpoint = "https://tmt.tencentcloudapi.com/"

// Tencent Cloud TMT API constants.
const (
	tencentAlgorithm = "TC3-HMAC-SHA256"
	tencentService   = "tmt"
	tencentVersion   = "2018-03-21"
	tencentAction    = "TextTranslate"
	tencentRegion    = "ap-beijing"
)

// Tencent is the Vendor-C adapter. Each call signs the request with the
// TC3-HMAC-SHA256 scheme: a canonical request string, a date-scoped signing
// key derived through three chained HMAC-SHA256 steps, and a final
// hex-encoded HMAC assembled into the Authorization header. Single POST,
// no retry.
type Tencent struct {
	// Endpoint is overridable for tests.
	Endpoint string
	client   *resty.Client
	logf     Logf
	// now is injectable for deterministic signing tests.
	now func() time.Time
}

// NewTencent builds the Tencent adapter with the runtime's request timeout.
func NewTencent(rt config.Runtime, logf Logf) *Tencent {
	return &Tencent{
		Endpoint: tencentEndpoint,
		client:   newClient(rt.RequestTimeout),
		logf:     logf,
		now:      time.Now,
	}
}

// ID implements Translator.
func (t *Tencent) ID() string { return IDTencent }

type tencentRequest struct {
	SourceText string `json:"SourceText"`
	Source     string `json:"Source"`
	Target     string `json:"Target"`
	ProjectID  int    `json:"ProjectId"`
}

type tencentResponse struct {
	Response struct {
		TargetText string `json:"TargetText"`
		Error      struct {
			Code    string `json:"Code"`
			Message string `json:"Message"`
		} `json:"Error"`
	} `json:"Response"`
}

func sha256hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func hmacSHA256(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// tencentSigningKey derives the date-scoped signing key:
// HMAC("TC3"+secret, date) -> HMAC(., service) -> HMAC(., "tc3_request").
func tencentSigningKey(secretKey, date, service string) []byte {
	kDate := hmacSHA256([]byte("TC3"+secretKey), []byte(date))
	kService := hmacSHA256(kDate, []byte(service))
	return hmacSHA256(kService, []byte("tc3_request"))
}

// tencentAuthorization builds the full Authorization header value for a
// payload signed at the given timestamp against host.
func tencentAuthorization(secretID, secretKey, host string, payload []byte, timestamp int64) string {
	date := time.Unix(timestamp, 0).UTC().Format("2006-01-02")

	canonicalHeaders := "content-type:application/json; charset=utf-8\nhost:" + host + "\n"
	signedHeaders := "content-type;host"
	canonicalRequest := fmt.Sprintf("POST\n/\n\n%s\n%s\n%s",
		canonicalHeaders, signedHeaders, sha256hex(payload))

	credentialScope := fmt.Sprintf("%s/%s/tc3_request", date, tencentService)
	stringToSign := fmt.Sprintf("%s\n%d\n%s\n%s",
		tencentAlgorithm, timestamp, credentialScope, sha256hex([]byte(canonicalRequest)))

	signingKey := tencentSigningKey(secretKey, date, tencentService)
	signature := hex.EncodeToString(hmacSHA256(signingKey, []byte(stringToSign)))

	return fmt.Sprintf("%s Credential=%s/%s, SignedHeaders=%s, Signature=%s",
		tencentAlgorithm, secretID, credentialScope, signedHeaders, signature)
}

// Translate implements Translator.
func (t *Tencent) Translate(ctx context.Context, text, apiLang string) string {
	creds, err := credentials.LoadTencent()
	if err != nil || creds.SecretID == "" || creds.SecretKey == "" {
		t.logf.printf("tencent translate needs TENCENT_SECRET_ID and TENCENT_SECRET_KEY")
		return text
	}

	payload, err := json.Marshal(tencentRequest{
		SourceText: text,
		Source:     "en",
		Target:     apiLang,
		ProjectID:  0,
	})
	if err != nil {
		t.logf.printf("tencent translate failed: %v", err)
		return text
	}

	host := tencentHost(t.Endpoint)
	timestamp := t.now().Unix()
	authorization := tencentAuthorization(creds.SecretID, creds.SecretKey, host, payload, timestamp)

	var result tencentResponse
	resp, err := t.client.R().
		SetContext(ctx).
		SetHeaders(map[string]string{
			"Authorization":  authorization,
			"Content-Type":   "application/json; charset=utf-8",
			"X-TC-Action":    tencentAction,
			"X-TC-Timestamp": strconv.FormatInt(timestamp, 10),
			"X-TC-Version":   tencentVersion,
			"X-TC-Region":    tencentRegion,
		}).
		SetBody(payload).
		SetResult(&result).
		Post(t.Endpoint)
	if err != nil {
		t.logf.printf("tencent translate failed: %v", err)
		return text
	}
	if resp.StatusCode() != http.StatusOK {
		t.logf.printf("tencent HTTP error: %d", resp.StatusCode())
		return text
	}
	if result.Response.TargetText == "" {
		msg := result.Response.Error.Message
		if msg == "" {
			msg = "unknown error"
		}
		t.logf.printf("tencent API error: %s", msg)
		return text
	}
	return result.Response.TargetText
}

// tencentHost extracts the host to sign against from the endpoint URL.
func tencentHost(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.Host != "" {
		return u.Host
	}
	return "tmt.tencentcloudapi.com"
}
