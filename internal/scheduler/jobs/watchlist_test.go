package jobs

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/quickscope/internal/contracts"
	"github.com/wonny/quickscope/pkg/logger"
)

type countingSource struct {
	mu        sync.Mutex
	snapshots map[string]int
	failing   map[string]bool
}

func newCountingSource(failing ...string) *countingSource {
	s := &countingSource{snapshots: make(map[string]int), failing: make(map[string]bool)}
	for _, t := range failing {
		s.failing[t] = true
	}
	return s
}

func (s *countingSource) Snapshot(_ context.Context, ticker string) (*contracts.FundamentalsSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failing[ticker] {
		return nil, errors.New("fetch failed")
	}
	s.snapshots[ticker]++
	return &contracts.FundamentalsSnapshot{Ticker: ticker}, nil
}

func (s *countingSource) Headlines(context.Context, string) ([]contracts.HeadlineScore, error) {
	return nil, nil
}

func (s *countingSource) Recommendations(context.Context, string) ([]contracts.AnalystRec, error) {
	return nil, nil
}

func TestWatchlistWarmJob(t *testing.T) {
	source := newCountingSource()
	job := NewWatchlistWarmJob(source, []string{"AAA", "BBB"}, "@daily", logger.Nop())

	assert.Equal(t, "watchlist_cache_warm", job.Name())
	assert.Equal(t, "@daily", job.Schedule())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, source.snapshots["AAA"])
	assert.Equal(t, 1, source.snapshots["BBB"])
}

func TestWatchlistWarmJobPartialFailure(t *testing.T) {
	source := newCountingSource("BAD")
	job := NewWatchlistWarmJob(source, []string{"AAA", "BAD"}, "@daily", logger.Nop())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, source.snapshots["AAA"])
}

func TestWatchlistWarmJobTotalFailure(t *testing.T) {
	source := newCountingSource("AAA", "BBB")
	job := NewWatchlistWarmJob(source, []string{"AAA", "BBB"}, "@daily", logger.Nop())

	assert.Error(t, job.Run(context.Background()))
}

func TestWatchlistWarmJobCancelled(t *testing.T) {
	source := newCountingSource()
	job := NewWatchlistWarmJob(source, []string{"AAA"}, "@daily", logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, job.Run(ctx))
	assert.Zero(t, source.snapshots["AAA"])
}
