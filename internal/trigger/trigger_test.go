package trigger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func at(secs float64) time.Time {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	return base.Add(time.Duration(secs * float64(time.Second)))
}

func TestEngineFiresOnRequiredCount(t *testing.T) {
	e := NewEngine(3, 2*time.Second)

	assert.False(t, e.OnEvent(KindCapture, at(0.0)))
	assert.False(t, e.OnEvent(KindCapture, at(0.5)))
	assert.True(t, e.OnEvent(KindCapture, at(1.0)))

	// Окно очищено: четвёртое нажатие сразу после срабатывания не стреляет
	assert.False(t, e.OnEvent(KindCapture, at(1.1)))
	assert.Equal(t, 1, e.Pending(KindCapture))
}

func TestEngineBelowCountNeverFires(t *testing.T) {
	e := NewEngine(3, 2*time.Second)

	assert.False(t, e.OnEvent(KindCapture, at(0.0)))
	assert.False(t, e.OnEvent(KindCapture, at(0.3)))
}

func TestEnginePurgesStaleTimestamps(t *testing.T) {
	e := NewEngine(3, 2*time.Second)

	assert.False(t, e.OnEvent(KindCapture, at(0.0)))
	assert.False(t, e.OnEvent(KindCapture, at(0.5)))
	// Разрыв больше окна: t=0.0 выпадает (3.0-0.0 > 2.0), остаётся 2 отметки
	assert.False(t, e.OnEvent(KindCapture, at(3.0)))
	assert.Equal(t, 2, e.Pending(KindCapture))
}

func TestEngineNoAccumulationAcrossGap(t *testing.T) {
	e := NewEngine(3, 2*time.Second)

	assert.False(t, e.OnEvent(KindSend, at(0.0)))
	assert.False(t, e.OnEvent(KindSend, at(2.1)))
	assert.False(t, e.OnEvent(KindSend, at(2.2)))
}

func TestEngineKindsAreIndependent(t *testing.T) {
	e := NewEngine(2, 2*time.Second)

	assert.False(t, e.OnEvent(KindCapture, at(0.0)))
	assert.False(t, e.OnEvent(KindSend, at(0.1)))
	// Срабатывание capture не трогает окно send
	assert.True(t, e.OnEvent(KindCapture, at(0.2)))
	assert.True(t, e.OnEvent(KindSend, at(0.3)))
}

func TestEngineRefiresAfterNewWindow(t *testing.T) {
	e := NewEngine(2, time.Second)

	assert.False(t, e.OnEvent(KindCapture, at(0.0)))
	assert.True(t, e.OnEvent(KindCapture, at(0.5)))
	assert.False(t, e.OnEvent(KindCapture, at(0.6)))
	assert.True(t, e.OnEvent(KindCapture, at(0.7)))
}

func TestListenerRoutesKeysToHandlers(t *testing.T) {
	var captured, sent []time.Time
	l := NewListener(
		NewEngine(2, 2*time.Second),
		zap.NewNop().Sugar(),
		func(at time.Time) { captured = append(captured, at) },
		func(at time.Time) { sent = append(sent, at) },
	)

	l.handle(KeyEvent{Key: KeyEnter, At: at(0.0)})
	l.handle(KeyEvent{Key: KeyEnter, At: at(0.5)})
	l.handle(KeyEvent{Key: KeyShift, At: at(1.0)})
	l.handle(KeyEvent{Key: KeyShift, At: at(1.5)})

	require.Len(t, captured, 1)
	assert.Equal(t, at(0.5), captured[0])
	require.Len(t, sent, 1)
	assert.Equal(t, at(1.5), sent[0])
}

func TestEngineConcurrentDeliverySafe(t *testing.T) {
	e := NewEngine(1000000, time.Hour)
	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 500; j++ {
				e.OnEvent(KindCapture, time.Now())
			}
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}
	require.Equal(t, 2000, e.Pending(KindCapture))
}
