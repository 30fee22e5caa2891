package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/quickscope/internal/api"
	"github.com/wonny/quickscope/internal/api/handlers"
	"github.com/wonny/quickscope/internal/scheduler"
	"github.com/wonny/quickscope/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the API server",
	Long: `Start the REST API server.

Endpoints:
  GET  /health                        - Health check
  POST /api/analyze                   - Run analyses for a ticker batch
  GET  /api/analyze/{ticker}          - Latest stored analysis (audit trail)
  GET  /api/analyze/{ticker}/history  - Stored analyses over a date range

Example:
  go run ./cmd/quickscope api
  go run ./cmd/quickscope api --port 8080 --watchlist AAPL,MSFT,NVDA`,
	RunE: runAPIServer,
}

var (
	apiPort       string
	apiWorkers    int
	watchlist     []string
	watchlistCron string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (overrides PORT)")
	apiCmd.Flags().IntVar(&apiWorkers, "workers", 4, "concurrent ticker analyses per request")
	apiCmd.Flags().StringSliceVar(&watchlist, "watchlist", nil, "tickers to cache-warm on a schedule")
	apiCmd.Flags().StringVar(&watchlistCron, "watchlist-cron", "0 0 13 * * 1-5", "cron schedule (with seconds) for the watchlist warm job")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	s, err := buildStack(apiWorkers)
	if err != nil {
		return err
	}
	defer s.Close()

	if apiPort != "" {
		s.cfg.Port = apiPort
	}

	log := s.log

	// Handlers and router. Audit endpoints mount only with a database.
	analyzeHandler := handlers.NewAnalyzeHandler(s.service, log)
	var auditHandler *handlers.AuditHandler
	if s.audit != nil {
		auditHandler = handlers.NewAuditHandler(s.audit, log)
	}
	router := api.NewRouter(analyzeHandler, auditHandler, log)
	server := api.New(s.cfg, log, router)

	// Optional watchlist cache warming.
	if len(watchlist) > 0 {
		sched := scheduler.New(log)
		job := jobs.NewWatchlistWarmJob(s.source, watchlist, watchlistCron, log)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("schedule watchlist job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("Server running on http://localhost:%s\n", s.cfg.Port)
	fmt.Println("Press Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
