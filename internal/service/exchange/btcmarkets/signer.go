package btcmarkets

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/base64"
	"net/http"

	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange"
)

// CanonicalMessage is method + path + timestamp + body, in that order. A
// missing body contributes the empty string.
func CanonicalMessage(method, path, timestamp, body string) string {
	return method + path + timestamp + body
}

// Sign returns base64(HMAC-SHA512(secret, canonical message)).
func Sign(secret []byte, method, path, timestamp, body string) string {
	mac := hmac.New(sha512.New, secret)
	_, _ = mac.Write([]byte(CanonicalMessage(method, path, timestamp, body)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignedHeaders are the authentication headers for a single request.
type SignedHeaders struct {
	APIKey    string
	Timestamp string
	Signature string
}

// NewSignedHeaders signs req with creds. The timestamp is taken from the
// request itself so the header and the signed message can never diverge.
func NewSignedHeaders(creds Credentials, req *exchange.Request, signQuery bool) SignedHeaders {
	return SignedHeaders{
		APIKey:    creds.apiKey,
		Timestamp: req.Timestamp,
		Signature: Sign(creds.secret, req.Method.ToString(), req.SigningPath(signQuery), req.Timestamp, req.BodyString()),
	}
}

func (h SignedHeaders) Apply(header http.Header) {
	header.Set("Accept", contentTypeJSON)
	header.Set("Accept-Charset", charsetUTF8)
	header.Set("Content-Type", contentTypeJSON)
	header.Set(APIKeyHeader, h.APIKey)
	header.Set(TimestampHeader, h.Timestamp)
	header.Set(SignatureHeader, h.Signature)
}
