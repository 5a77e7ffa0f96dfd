package gstreamer

import (
	"runtime"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-gst/go-glib/glib"
	"github.com/go-gst/go-gst/gst"
	"github.com/google/uuid"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/gsteasy/internal/domain/pipeline"
)

// NamePrefix prefixes the name of every top-level pipeline.
const NamePrefix = "easy-play-"

// Pipeline is a top-level GStreamer pipeline built from a description.
type Pipeline struct {
	pipeline *gst.Pipeline
	name     string

	mu       sync.Mutex
	mainLoop *glib.MainLoop
	wg       sync.WaitGroup
}

// NewPipeline parses description and places the result in a new pipeline
// with a unique name, so that its own state changes can be told apart from
// those of its children.
func NewPipeline(description string) (*Pipeline, error) {
	bin, err := gst.NewBinFromString(description, false)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %q", description)
	}

	name := pipelineName()
	pipe, err := gst.NewPipeline(name)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create pipeline")
	}
	if err := pipe.Add(bin.Element); err != nil {
		return nil, errors.Wrap(err, "failed to add elements to pipeline")
	}
	pipe.Ref()

	zlog.Debug().Msgf("gstreamer: created %s", name)
	return &Pipeline{
		pipeline: pipe,
		name:     name,
	}, nil
}

func pipelineName() string {
	return NamePrefix + uuid.NewString()[:8]
}

// Name returns the pipeline name.
func (p *Pipeline) Name() string {
	return p.name
}

// SetState requests a state change and returns the outcome.
func (p *Pipeline) SetState(state pipeline.State) pipeline.StateChangeReturn {
	ret := setState(p.pipeline.Unsafe(), state)
	runtime.KeepAlive(p.pipeline)
	return ret
}

// Watch installs a bus watch and runs a GLib main loop to dispatch it.
// handler is called on the main loop goroutine.
func (p *Pipeline) Watch(handler func(pipeline.Message)) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.mainLoop != nil {
		return errors.New("bus already watched")
	}

	ok := p.pipeline.GetPipelineBus().AddWatch(func(msg *gst.Message) bool {
		if m, ok := p.convert(msg); ok {
			handler(m)
		}
		return true
	})
	if !ok {
		return errors.Newf("failed to add watch to %s bus", p.name)
	}

	p.mainLoop = glib.NewMainLoop(glib.MainContextDefault(), false)
	p.wg.Add(1)
	go func(loop *glib.MainLoop) {
		defer p.wg.Done()
		loop.Run()
	}(p.mainLoop)
	return nil
}

// Unwatch removes the bus watch and stops the main loop.
func (p *Pipeline) Unwatch() {
	p.mu.Lock()
	loop := p.mainLoop
	p.mainLoop = nil
	p.mu.Unlock()
	if loop == nil {
		return
	}

	p.pipeline.GetPipelineBus().RemoveWatch()
	loop.Quit()
	p.wg.Wait()
}

// Stop sets the pipeline to NULL and waits for the transition to finish.
func (p *Pipeline) Stop() error {
	if err := p.pipeline.BlockSetState(gst.StateNull); err != nil {
		return errors.Wrapf(err, "failed to set %s to NULL", p.name)
	}
	return nil
}

// Close releases the pipeline.
func (p *Pipeline) Close() {
	p.Unwatch()
	if p.pipeline != nil {
		p.pipeline.Unref()
		p.pipeline = nil
	}
}

// convert maps a bus message to its domain form. Messages the player does
// not handle are dropped.
func (p *Pipeline) convert(msg *gst.Message) (pipeline.Message, bool) {
	source := msg.Source()

	switch msg.Type() {
	case gst.MessageError:
		gerr := msg.ParseError()
		m := pipeline.NewError(source, gerr.Error(), gerr.DebugString())
		m.SourcePath = p.pathOf(source)
		return m, true
	case gst.MessageWarning:
		gerr := msg.ParseWarning()
		m := pipeline.NewWarning(source, gerr.Error(), gerr.DebugString())
		m.SourcePath = p.pathOf(source)
		return m, true
	case gst.MessageEOS:
		return pipeline.NewEOS(source), true
	case gst.MessageStateChanged:
		oldState, newState := msg.ParseStateChanged()
		return pipeline.NewStateChanged(source, fromGstState(oldState), fromGstState(newState), pipeline.StateVoidPending), true
	case gst.MessageBuffering:
		return pipeline.NewBuffering(source, msg.ParseBuffering()), true
	default:
		return pipeline.Message{}, false
	}
}

// pathOf returns the object path of the named element, or name when the
// element cannot be found.
func (p *Pipeline) pathOf(name string) string {
	if name == p.name {
		if path := objectPath(p.pipeline.Unsafe()); path != "" {
			return path
		}
		return name
	}
	elem, err := p.pipeline.GetElementByName(name)
	if err != nil || elem == nil {
		return name
	}
	if path := objectPath(elem.Unsafe()); path != "" {
		return path
	}
	return name
}

func fromGstState(state gst.State) pipeline.State {
	switch state {
	case gst.StateNull:
		return pipeline.StateNull
	case gst.StateReady:
		return pipeline.StateReady
	case gst.StatePaused:
		return pipeline.StatePaused
	case gst.StatePlaying:
		return pipeline.StatePlaying
	default:
		return pipeline.StateVoidPending
	}
}
