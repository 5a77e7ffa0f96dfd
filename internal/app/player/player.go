package player

import (
	"context"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"

	"github.com/osa030/gsteasy/internal/domain/pipeline"
)

// ErrNoDescription is returned when there is nothing to play.
var ErrNoDescription = errors.New("empty pipeline description")

// Pipeline is a constructed pipeline owned by the player.
type Pipeline interface {
	Controller
	// Watch starts delivering bus messages to handler. handler may be
	// called from any goroutine.
	Watch(handler func(pipeline.Message)) error
	// Unwatch removes the bus watch.
	Unwatch()
	// Stop sets the pipeline to NULL and waits for the transition.
	Stop() error
	// Close releases the pipeline.
	Close()
}

// Engine builds pipelines from textual descriptions.
type Engine interface {
	Build(description string) (Pipeline, error)
}

// EngineFunc adapts a function to the Engine interface.
type EngineFunc func(description string) (Pipeline, error)

// Build calls f(description).
func (f EngineFunc) Build(description string) (Pipeline, error) {
	return f(description)
}

// Config holds player configuration.
type Config struct {
	Description     string         // Pipeline description
	Quiet           bool           // Suppress progress logs
	HandleInterrupt bool           // Install a SIGINT handler
	Console         LineReader     // Interactive input; nil disables the console
	ConsoleOut      io.Writer      // Console output (status, help)
	Logger          zerolog.Logger // Session logger
}

// Description joins command-line arguments into a pipeline description.
func Description(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

// Player runs one pipeline from construction to teardown.
type Player struct {
	engine Engine
	cfg    Config

	loop    *Loop
	session *Session
}

// New creates a new player.
func New(engine Engine, cfg Config) *Player {
	if cfg.ConsoleOut == nil {
		cfg.ConsoleOut = io.Discard
	}
	return &Player{
		engine: engine,
		cfg:    cfg,
		loop:   NewLoop(),
	}
}

// Session returns the session of the running pipeline, nil before Run.
func (p *Player) Session() *Session {
	return p.session
}

// Run builds the pipeline, requests PLAYING and runs the event loop until
// EOS, an error message, an interrupt or ctx cancellation. The pipeline is
// always set to NULL and released before Run returns.
// Pipeline errors reported on the bus end playback but are not returned.
func (p *Player) Run(ctx context.Context) error {
	if p.cfg.Description == "" {
		return ErrNoDescription
	}
	log := p.cfg.Logger

	if !p.cfg.Quiet {
		log.Info().Msgf("line: %s", p.cfg.Description)
	}
	pipe, err := p.engine.Build(p.cfg.Description)
	if err != nil {
		return errors.Wrap(err, "failed to build pipeline")
	}
	defer pipe.Close()

	p.session = NewSession(pipe, p.loop, Options{
		Interactive: p.cfg.Console != nil,
		Quiet:       p.cfg.Quiet,
		Logger:      log,
	})

	session := p.session
	loop := p.loop
	if err := pipe.Watch(func(msg pipeline.Message) {
		loop.Post(func() { session.HandleMessage(msg) })
	}); err != nil {
		return errors.Wrap(err, "failed to watch pipeline bus")
	}

	// The initial request runs on the loop like every other session call,
	// ahead of any console command.
	loop.Post(func() { session.Play() })

	if p.cfg.HandleInterrupt {
		w := watchInterrupt(loop, session)
		defer w.Stop()
	}

	if p.cfg.Console != nil {
		console := NewConsole(p.cfg.Console, p.cfg.ConsoleOut, loop, session)
		console.Start()
		defer func() {
			if err := console.Close(); err != nil {
				log.Debug().Err(err).Msg("player: failed to close console")
			}
		}()
	}

	if err := loop.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Msg("player: loop stopped")
	}

	p.teardown(pipe)
	return nil
}

// teardown removes the bus watch and forces the pipeline to NULL.
func (p *Player) teardown(pipe Pipeline) {
	log := p.cfg.Logger

	pipe.Unwatch()
	if err := pipe.Stop(); err != nil {
		log.Error().Err(err).Msgf("failed to stop %s", pipe.Name())
		return
	}
	log.Debug().Msgf("player: %s set to NULL", pipe.Name())
}
