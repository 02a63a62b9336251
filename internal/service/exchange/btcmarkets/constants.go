package btcmarkets

import "time"

const (
	BaseURL = "https://api.btcmarkets.net"

	APIKeyHeader    = "BM-AUTH-APIKEY"
	TimestampHeader = "BM-AUTH-TIMESTAMP"
	SignatureHeader = "BM-AUTH-SIGNATURE"

	contentTypeJSON = "application/json"
	charsetUTF8     = "UTF-8"

	DefaultTimeout = 30 * time.Second
)
