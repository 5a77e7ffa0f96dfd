package player

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestInterruptWatch_FirstSignalQuits(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loop := NewLoop()
	logger, buf := newTestLogger()
	session := NewSession(newFakePipeline(), loop, Options{Logger: logger})

	w := newInterruptWatch()
	w.start(loop, session)
	w.sigCh <- os.Interrupt

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, loop.Run(ctx))
	w.Stop()

	assert.True(t, session.Quitting())
	assert.Contains(t, buf.String(), "handling interrupt.")
}

func TestInterruptWatch_StopWithoutSignal(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	loop := NewLoop()
	session := NewSession(newFakePipeline(), loop, Options{})

	w := watchInterrupt(loop, session)
	w.Stop()
	w.Stop()

	assert.False(t, session.Quitting())
}
