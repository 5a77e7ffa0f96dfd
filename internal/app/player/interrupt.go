package player

import (
	"os"
	"os/signal"
	"sync"
)

// interruptWatch delivers the first interrupt signal to the session as a
// loop task and then deregisters itself.
type interruptWatch struct {
	sigCh chan os.Signal
	stop  chan struct{}
	wg    sync.WaitGroup
	once  sync.Once
}

// watchInterrupt registers for SIGINT.
func watchInterrupt(loop *Loop, session *Session) *interruptWatch {
	w := newInterruptWatch()
	signal.Notify(w.sigCh, os.Interrupt)
	w.start(loop, session)
	return w
}

func newInterruptWatch() *interruptWatch {
	return &interruptWatch{
		sigCh: make(chan os.Signal, 1),
		stop:  make(chan struct{}),
	}
}

func (w *interruptWatch) start(loop *Loop, session *Session) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer signal.Stop(w.sigCh)

		select {
		case <-w.sigCh:
			signal.Stop(w.sigCh)
			loop.Post(session.Interrupt)
		case <-w.stop:
		}
	}()
}

// Stop deregisters the handler if it has not fired yet.
func (w *interruptWatch) Stop() {
	w.once.Do(func() {
		close(w.stop)
	})
	w.wg.Wait()
}
