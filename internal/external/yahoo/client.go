// Package yahoo fetches quotes, fundamentals, headlines and analyst actions
// from Yahoo Finance endpoints. It is the engine's only network-facing data
// source; everything it returns is already shaped as engine contracts.
package yahoo

import (
	"github.com/wonny/quickscope/pkg/config"
	"github.com/wonny/quickscope/pkg/httputil"
	"github.com/wonny/quickscope/pkg/logger"
	"github.com/wonny/quickscope/pkg/redis"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client talks to Yahoo Finance. It implements analyzer.DataSource.
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.YahooConfig
	cache      *redis.Cache
}

// NewClient creates a Yahoo Finance client. The shared rate limit protects
// all three endpoint families at once.
func NewClient(cfg *config.Config, log *logger.Logger, cache *redis.Cache) *Client {
	httpClient := httputil.New(cfg, log).
		WithRateLimit(cfg.Yahoo.RatePerSec).
		WithUserAgent(userAgent)

	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg.Yahoo,
		cache:      cache,
	}
}
