// Package credentials resolves per-provider secret material from the
// execution environment.
//
// Credentials are never persisted: every provider call reads the named
// environment variables fresh. A local .env file is loaded once,
// best-effort, so development setups work without exporting variables.
//
// Required variables per provider:
//
//	google   : none (unauthenticated endpoint)
//	youdao   : YOUDAO_APP_KEY, YOUDAO_APP_SECRET
//	baidu    : BAIDU_APP_ID, BAIDU_APP_KEY
//	tencent  : TENCENT_SECRET_ID, TENCENT_SECRET_KEY
package credentials

import (
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// required maps provider IDs to the environment variables they need.
var required = map[string][]string{
	"google":  nil,
	"youdao":  {"YOUDAO_APP_KEY", "YOUDAO_APP_SECRET"},
	"baidu":   {"BAIDU_APP_ID", "BAIDU_APP_KEY"},
	"tencent": {"TENCENT_SECRET_ID", "TENCENT_SECRET_KEY"},
}

// LoadDotenv loads a .env file from the working directory if one exists.
// Absence is not an error.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Required returns the environment variable names a provider needs.
func Required(providerID string) []string {
	return required[providerID]
}

// Missing returns the required variables that are unset or empty.
func Missing(providerID string) []string {
	var missing []string
	for _, name := range required[providerID] {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// Configured reports whether every required variable for a provider is set.
func Configured(providerID string) bool {
	return len(Missing(providerID)) == 0
}

// ---------------------------------------------------------------------------
// Typed credential sets (read fresh per call, never cached)
// ---------------------------------------------------------------------------

// Youdao holds the Youdao OpenAPI key pair.
type Youdao struct {
	AppKey    string `env:"YOUDAO_APP_KEY"`
	AppSecret string `env:"YOUDAO_APP_SECRET"`
}

// Baidu holds the Baidu Fanyi app credentials.
type Baidu struct {
	AppID  string `env:"BAIDU_APP_ID"`
	AppKey string `env:"BAIDU_APP_KEY"`
}

// Tencent holds the Tencent Cloud API secret pair.
type Tencent struct {
	SecretID  string `env:"TENCENT_SECRET_ID"`
	SecretKey string `env:"TENCENT_SECRET_KEY"`
}

// LoadYoudao reads the Youdao credentials from the environment.
func LoadYoudao() (Youdao, error) {
	var c Youdao
	err := env.Parse(&c)
	return c, err
}

// LoadBaidu reads the Baidu credentials from the environment.
func LoadBaidu() (Baidu, error) {
	var c Baidu
	err := env.Parse(&c)
	return c, err
}

// LoadTencent reads the Tencent credentials from the environment.
func LoadTencent() (Tencent, error) {
	var c Tencent
	err := env.Parse(&c)
	return c, err
}

// MaskKey returns a masked rendition of a key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}
