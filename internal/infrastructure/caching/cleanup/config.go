package cleanup

import (
	"time"

	"github.com/DainoStore/dainostore-go/pkg/config"
)

// Config holds cleanup worker configuration, sourced from the central config package.
type Config struct {
	CleanupInterval   time.Duration
	VerboseReporting  bool
	CatalogCacheTTL   time.Duration
	SessionCacheTTL   time.Duration
	AnalyticsCacheTTL time.Duration
	FragmentCacheTTL  time.Duration
}

// NewConfig creates a new cleanup configuration by reading values
// from the already-initialized variables in the centralized /pkg/config package.
func NewConfig() *Config {
	return &Config{
		CleanupInterval:   config.CleanupInterval,
		VerboseReporting:  config.CleanupVerbose,
		CatalogCacheTTL:   config.CatalogCacheTTL,
		SessionCacheTTL:   config.SessionTTL,
		AnalyticsCacheTTL: config.AnalyticsBinTTL,
		FragmentCacheTTL:  config.FragmentTTL,
	}
}
