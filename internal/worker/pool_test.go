package worker

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_PreservesInputOrder(t *testing.T) {
	inputs := []string{"a", "bb", "ccc", "dddd", "eeeee", "f"}

	for _, workers := range []int{0, 1, 3, 16} {
		pool := NewPool(workers, func(_ context.Context, s string) (string, error) {
			return strings.ToUpper(s), nil
		})
		tasks := pool.Execute(context.Background(), inputs)

		require.Len(t, tasks, len(inputs))
		for i, task := range tasks {
			assert.Equal(t, inputs[i], task.Input)
			assert.Equal(t, strings.ToUpper(inputs[i]), task.Result)
			assert.NoError(t, task.Err)
		}
		assert.NoError(t, FirstError(tasks))
	}
}

func TestPool_WorkersFloor(t *testing.T) {
	assert.Equal(t, 1, NewPool(-2, func(context.Context, int) (int, error) { return 0, nil }).Workers())
}

func TestPool_FirstErrorInInputOrder(t *testing.T) {
	errTwo := errors.New("two")
	errFour := errors.New("four")

	pool := NewPool(4, func(_ context.Context, n int) (int, error) {
		switch n {
		case 2:
			return 0, errTwo
		case 4:
			return 0, errFour
		}
		return n * n, nil
	})
	tasks := pool.Execute(context.Background(), []int{1, 2, 3, 4})

	assert.Equal(t, 9, tasks[2].Result)
	assert.ErrorIs(t, FirstError(tasks), errTwo)
}

func TestPool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls atomic.Int32
	pool := NewPool(2, func(context.Context, int) (int, error) {
		calls.Add(1)
		return 1, nil
	})
	tasks := pool.Execute(ctx, []int{1, 2, 3, 4, 5, 6, 7, 8})

	require.Len(t, tasks, 8)
	failed := 0
	for i, task := range tasks {
		assert.Equal(t, i+1, task.Input)
		if task.Err != nil {
			assert.ErrorIs(t, task.Err, context.Canceled)
			failed++
		}
	}
	assert.Equal(t, 8, failed+int(calls.Load()))
	assert.ErrorIs(t, FirstError(tasks), context.Canceled)
}
