package sites

import "github.com/goliatone/go-sites/internal/runtimeconfig"

var (
	ErrLoggingProviderUnknown = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
	ErrCacheTTLInvalid        = runtimeconfig.ErrCacheTTLInvalid
)

type (
	Config        = runtimeconfig.Config
	StorageConfig = runtimeconfig.StorageConfig
	CacheConfig   = runtimeconfig.CacheConfig
	LoggingConfig = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
