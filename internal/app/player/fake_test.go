package player

import (
	"bytes"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/osa030/gsteasy/internal/domain/pipeline"
)

const testPipelineName = "easy-play-test"

// fakePipeline records state requests and teardown calls.
type fakePipeline struct {
	mu sync.Mutex

	name     string
	requests []pipeline.State
	calls    []string
	returns  map[pipeline.State]pipeline.StateChangeReturn

	handler  func(pipeline.Message)
	watchErr error
	stopErr  error

	// onSetState runs after each request, outside the lock.
	onSetState func(p *fakePipeline, state pipeline.State)
	wg         sync.WaitGroup
}

func newFakePipeline() *fakePipeline {
	return &fakePipeline{
		name:    testPipelineName,
		returns: make(map[pipeline.State]pipeline.StateChangeReturn),
	}
}

func (p *fakePipeline) Name() string {
	return p.name
}

func (p *fakePipeline) SetState(state pipeline.State) pipeline.StateChangeReturn {
	p.mu.Lock()
	p.requests = append(p.requests, state)
	ret, ok := p.returns[state]
	hook := p.onSetState
	p.mu.Unlock()

	if hook != nil {
		hook(p, state)
	}
	if !ok {
		return pipeline.StateChangeSuccess
	}
	return ret
}

func (p *fakePipeline) Watch(handler func(pipeline.Message)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "watch")
	if p.watchErr != nil {
		return p.watchErr
	}
	p.handler = handler
	return nil
}

func (p *fakePipeline) Unwatch() {
	p.wg.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "unwatch")
	p.handler = nil
}

func (p *fakePipeline) Stop() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "stop")
	return p.stopErr
}

func (p *fakePipeline) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls = append(p.calls, "close")
}

// post delivers messages from a separate goroutine, like a bus watch.
func (p *fakePipeline) post(msgs ...pipeline.Message) {
	p.mu.Lock()
	handler := p.handler
	p.mu.Unlock()
	if handler == nil {
		return
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for _, msg := range msgs {
			handler(msg)
		}
	}()
}

func (p *fakePipeline) Requests() []pipeline.State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]pipeline.State(nil), p.requests...)
}

func (p *fakePipeline) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *fakePipeline) resetRequests() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.requests = nil
}

// fakeStopper counts shutdown requests.
type fakeStopper struct {
	quits int
}

func (s *fakeStopper) Quit() {
	s.quits++
}

// syncBuffer is a goroutine-safe log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Lines returns the message field of every logged line.
func (b *syncBuffer) Lines() []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimSpace(b.String()), "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func newTestLogger() (zerolog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return zerolog.New(buf).Level(zerolog.InfoLevel), buf
}

// indexOf returns the index of the first line containing s, or -1.
func indexOf(lines []string, s string) int {
	for i, line := range lines {
		if strings.Contains(line, s) {
			return i
		}
	}
	return -1
}
