package commands

import (
	"fmt"

	"github.com/wonny/quickscope/internal/analyzer"
	"github.com/wonny/quickscope/internal/audit"
	"github.com/wonny/quickscope/internal/external/yahoo"
	"github.com/wonny/quickscope/internal/strategyconfig"
	"github.com/wonny/quickscope/internal/valuation"
	"github.com/wonny/quickscope/pkg/config"
	"github.com/wonny/quickscope/pkg/database"
	"github.com/wonny/quickscope/pkg/logger"
	"github.com/wonny/quickscope/pkg/redis"
)

// stack holds the wired application components shared by commands.
type stack struct {
	cfg     *config.Config
	log     *logger.Logger
	source  *yahoo.Client
	service *analyzer.Service
	audit   *audit.Repository

	closers []func()
}

// Close releases held connections in reverse acquisition order.
func (s *stack) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// buildStack loads config and wires cache, data source, analyzer and the
// optional audit trail. workers bounds batch fan-out.
func buildStack(workers int) (*stack, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)
	s := &stack{cfg: cfg, log: log}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	s.closers = append(s.closers, func() { redisClient.Close() })
	cache := redis.NewCache(redisClient, "quickscope")

	s.source = yahoo.NewClient(cfg, log, cache)

	strategyCfg, err := strategyconfig.LoadOrDefault(cfg.StrategyConfigPath)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("load strategy config: %w", err)
	}

	market := valuation.MarketParams{
		RiskFreeRate:      cfg.Market.RiskFreeRate,
		EquityRiskPremium: cfg.Market.EquityRiskPremium,
	}
	core, err := analyzer.New(log, market, strategyCfg)
	if err != nil {
		s.Close()
		return nil, err
	}

	var recorder analyzer.Recorder
	if cfg.AuditEnabled() {
		db, err := database.New(cfg)
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		s.closers = append(s.closers, db.Close)
		s.audit = audit.NewRepository(db.Pool)
		recorder = s.audit
		log.Info("Audit trail enabled")
	}

	s.service = analyzer.NewService(log, core, s.source, recorder, workers)
	return s, nil
}
