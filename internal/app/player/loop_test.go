package player

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestLoop_RunsTasksInOrder(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loop := NewLoop()
	var got []int
	for i := 0; i < 5; i++ {
		i := i
		require.True(t, loop.Post(func() { got = append(got, i) }))
	}
	require.True(t, loop.Post(loop.Quit))

	err := loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestLoop_QuitDropsPendingTasks(t *testing.T) {
	loop := NewLoop()
	ran := 0
	loop.Post(func() {
		ran++
		loop.Quit()
	})
	loop.Post(func() { ran++ })
	loop.Post(func() { ran++ })

	err := loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, ran)
}

func TestLoop_PostAfterQuit(t *testing.T) {
	loop := NewLoop()
	loop.Quit()
	loop.Quit()

	assert.False(t, loop.Post(func() {}))
	select {
	case <-loop.Done():
	default:
		t.Fatal("Done() should be closed after Quit()")
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loop := NewLoop()
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := loop.Run(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.False(t, loop.Post(func() {}), "loop should be quit after cancellation")
}

func TestLoop_PostFromOtherGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loop := NewLoop()
	const producers = 4
	const perProducer = 100
	count := 0

	done := make(chan struct{})
	for p := 0; p < producers; p++ {
		go func() {
			for i := 0; i < perProducer; i++ {
				loop.Post(func() { count++ })
			}
			done <- struct{}{}
		}()
	}
	go func() {
		for p := 0; p < producers; p++ {
			<-done
		}
		loop.Post(loop.Quit)
	}()

	err := loop.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, producers*perProducer, count)
}
