package btcmarkets

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	masker "github.com/goliatone/go-masker"
)

// ErrConfiguration marks missing or malformed credentials. It is fatal at startup.
var ErrConfiguration = errors.New("btcmarkets: invalid configuration")

const keyMask = "preserveEnds(2,2)"

// Credentials holds the API key and the decoded private key. The secret never
// leaves this package: it is not exported, re-encoded or printed.
type Credentials struct {
	apiKey string
	secret []byte
}

// NewCredentials decodes the base64 private key issued by the exchange.
func NewCredentials(apiKey, privateKey string) (Credentials, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return Credentials{}, fmt.Errorf("%w: api key is empty", ErrConfiguration)
	}

	privateKey = strings.TrimSpace(privateKey)
	if privateKey == "" {
		return Credentials{}, fmt.Errorf("%w: private key is empty", ErrConfiguration)
	}
	secret, err := base64.StdEncoding.DecodeString(privateKey)
	if err != nil {
		// don't echo the key material back in the error
		return Credentials{}, fmt.Errorf("%w: private key is not valid base64", ErrConfiguration)
	}
	if len(secret) == 0 {
		return Credentials{}, fmt.Errorf("%w: private key decodes to zero bytes", ErrConfiguration)
	}

	return Credentials{apiKey: apiKey, secret: secret}, nil
}

func (c Credentials) APIKey() string {
	return c.apiKey
}

func (c Credentials) IsZero() bool {
	return c.apiKey == "" || len(c.secret) == 0
}

func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{apiKey: %s, secret: [REDACTED]}", maskKey(c.apiKey))
}

// LogValue keeps slog from ever rendering the struct fields.
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("api_key", maskKey(c.apiKey)),
		slog.String("secret", "[REDACTED]"),
	)
}

func maskKey(value string) string {
	if value == "" {
		return ""
	}
	if masked, err := masker.Default.String(keyMask, value); err == nil && masked != value {
		return masked
	}
	runes := []rune(value)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
