package provider

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"

	"github.com/go-resty/resty/v2"

	"github.com/xcstrings-tools/xckit/config"
	"github.com/xcstrings-tools/xckit/credentials"
)

const baiduEndpoint = "https://fanyi-api.baidu.com/api/trans/vip/translate"

// Baidu is the Vendor-B adapter: MD5 signed single GET, no retry.
type Baidu struct {
	// Endpoint is overridable for tests.
	Endpoint string
	client   *resty.Client
	logf     Logf
}

// NewBaidu builds the Baidu adapter with the runtime's request timeout.
func NewBaidu(rt config.Runtime, logf Logf) *Baidu {
	return &Baidu{
		Endpoint: baiduEndpoint,
		client:   newClient(rt.RequestTimeout),
		logf:     logf,
	}
}

// ID implements Translator.
func (b *Baidu) ID() string { return IDBaidu }

// baiduSign computes MD5(appID + text + salt + appKey), hex encoded.
func baiduSign(appID, text, salt, appKey string) string {
	sum := md5.Sum([]byte(appID + text + salt + appKey))
	return hex.EncodeToString(sum[:])
}

type baiduResponse struct {
	ErrorMsg    string `json:"error_msg"`
	TransResult []struct {
		Dst string `json:"dst"`
	} `json:"trans_result"`
}

// Translate implements Translator.
func (b *Baidu) Translate(ctx context.Context, text, apiLang string) string {
	creds, err := credentials.LoadBaidu()
	if err != nil || creds.AppID == "" || creds.AppKey == "" {
		b.logf.printf("baidu translate needs BAIDU_APP_ID and BAIDU_APP_KEY")
		return text
	}

	salt := saltIn(32768, 65536)
	sign := baiduSign(creds.AppID, text, salt, creds.AppKey)

	var result baiduResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":     text,
			"from":  "en",
			"to":    apiLang,
			"appid": creds.AppID,
			"salt":  salt,
			"sign":  sign,
		}).
		SetResult(&result).
		Get(b.Endpoint)
	if err != nil {
		b.logf.printf("baidu translate failed: %v", err)
		return text
	}
	if resp.StatusCode() != http.StatusOK {
		b.logf.printf("baidu HTTP error: %d", resp.StatusCode())
		return text
	}
	if len(result.TransResult) == 0 {
		msg := result.ErrorMsg
		if msg == "" {
			msg = "unknown error"
		}
		b.logf.printf("baidu API error: %s", msg)
		return text
	}
	return result.TransResult[0].Dst
}
