package ioc

import (
	"strings"

	"github.com/spf13/viper"
)

const EnvPrefix = "BTCM"

// InitEnv lets BTCM_* env vars override config keys, e.g.
// BTCM_CEX_BTCMARKETS_API_KEY overrides cex.btcmarkets.api_key.
func InitEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}
