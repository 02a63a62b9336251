package ioc

import (
	"github.com/KNICEX/btcmarkets-cli/internal/service/exchange/btcmarkets"
	"github.com/spf13/viper"
)

// Keys are read leaf by leaf: viper only consults BTCM_* env vars for the
// exact key asked for, never for the children of a parent key.

func InitCredentials() (btcmarkets.Credentials, error) {
	return btcmarkets.NewCredentials(
		viper.GetString("cex.btcmarkets.api_key"),
		viper.GetString("cex.btcmarkets.api_secret"),
	)
}

func InitBTCMarketsCli(creds btcmarkets.Credentials) *btcmarkets.Client {
	return btcmarkets.NewClient(creds,
		btcmarkets.WithBaseURL(viper.GetString("cex.btcmarkets.base_url")),
		btcmarkets.WithSignedQuery(viper.GetBool("cex.btcmarkets.sign_query")),
		btcmarkets.WithTimeout(viper.GetDuration("http.timeout")),
	)
}
