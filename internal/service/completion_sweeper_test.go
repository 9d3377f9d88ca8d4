package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type countingCompleter struct {
	calls atomic.Int32
	err   error
}

func (c *countingCompleter) CompleteDue(context.Context, int) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSweeperRunsPeriodically(t *testing.T) {
	completer := &countingCompleter{}
	sweeper := NewCompletionSweeper(completer, 5*time.Millisecond, nil)

	sweeper.Start(context.Background())
	assert.Eventually(t, func() bool { return completer.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	sweeper.Stop()

	stopped := completer.calls.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, completer.calls.Load())
}

func TestSweeperDisabled(t *testing.T) {
	completer := &countingCompleter{}
	sweeper := NewCompletionSweeper(completer, 0, nil)

	sweeper.Start(context.Background())
	sweeper.Stop()
	assert.Zero(t, completer.calls.Load())
}

func TestSweepToleratesErrors(t *testing.T) {
	completer := &countingCompleter{err: errors.New("boom")}
	sweeper := NewCompletionSweeper(completer, time.Hour, nil)

	sweeper.Sweep(context.Background())
	assert.Equal(t, int32(1), completer.calls.Load())
}
