package site

import (
	"context"
	stderrors "errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunOrdered_PreservesOrder(t *testing.T) {
	items := []int{5, 1, 4, 2, 3}
	results := runOrdered(context.Background(), items, 3, func(n int) (int, error) {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10, nil
	})

	require.Len(t, results, len(items))
	for i, n := range items {
		assert.Equal(t, n*10, results[i].Value)
		assert.NoError(t, results[i].Err)
	}
	assert.NoError(t, firstError(results))
}

func TestRunOrdered_BoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := make([]int, 20)
	runOrdered(context.Background(), items, 2, func(int) (struct{}, error) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		inFlight.Add(-1)
		return struct{}{}, nil
	})
	assert.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRunOrdered_FirstErrorInInputOrder(t *testing.T) {
	errA := stderrors.New("a")
	errB := stderrors.New("b")
	results := runOrdered(context.Background(), []string{"ok", "a", "b"}, 0, func(s string) (string, error) {
		switch s {
		case "a":
			return "", errA
		case "b":
			return "", errB
		}
		return s, nil
	})
	assert.ErrorIs(t, firstError(results), errA)
}

func TestRunOrdered_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	results := runOrdered(ctx, []int{1, 2, 3}, 1, func(int) (int, error) {
		calls.Add(1)
		return 0, nil
	})
	assert.Equal(t, int32(0), calls.Load())
	assert.ErrorIs(t, firstError(results), context.Canceled)
}

func TestRunOrdered_Empty(t *testing.T) {
	assert.Nil(t, runOrdered(context.Background(), []int(nil), 4, func(int) (int, error) { return 0, nil }))
}
