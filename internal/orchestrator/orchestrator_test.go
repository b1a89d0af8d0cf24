package orchestrator

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"ExamAssistant/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOrchestrator(limit int) *Orchestrator {
	cfg := config.Defaults()
	cfg.MaxConcurrentAnalysis = limit
	return New(cfg, zap.NewNop().Sugar(), nil, nil, nil, nil)
}

func TestDispatchDropsBeyondLimit(t *testing.T) {
	o := newTestOrchestrator(2)

	var started atomic.Int32
	release := make(chan struct{})
	run := func(ctx context.Context, at time.Time) {
		started.Add(1)
		<-release
	}

	for range 5 {
		o.dispatch(context.Background(), "capture", time.Now(), run)
	}

	require.Eventually(t, func() bool { return started.Load() == 2 }, time.Second, 10*time.Millisecond)
	// Сверх лимита — отброшено, не поставлено в очередь
	assert.Equal(t, int32(2), started.Load())

	close(release)
	o.Wait()
	assert.Equal(t, int32(2), started.Load())
}

func TestDispatchFreesSlotAfterCompletion(t *testing.T) {
	o := newTestOrchestrator(1)

	var done atomic.Int32
	run := func(ctx context.Context, at time.Time) { done.Add(1) }

	o.dispatch(context.Background(), "send", time.Now(), run)
	o.Wait()
	o.dispatch(context.Background(), "send", time.Now(), run)
	o.Wait()

	assert.Equal(t, int32(2), done.Load())
}

func TestDispatchDoesNotBlockCaller(t *testing.T) {
	o := newTestOrchestrator(1)

	release := make(chan struct{})
	defer close(release)
	run := func(ctx context.Context, at time.Time) { <-release }

	start := time.Now()
	for range 10 {
		o.dispatch(context.Background(), "capture", time.Now(), run)
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestZeroLimitFallsBackToOne(t *testing.T) {
	o := newTestOrchestrator(0)
	assert.Equal(t, 1, cap(o.sem))
}
