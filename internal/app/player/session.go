package player

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/osa030/gsteasy/internal/domain/pipeline"
)

// Controller is the part of a pipeline the session drives.
type Controller interface {
	// Name returns the name of the top-level pipeline object.
	Name() string
	// SetState requests a state change and reports its outcome.
	SetState(state pipeline.State) pipeline.StateChangeReturn
}

// Stopper stops the event loop driving a session.
type Stopper interface {
	Quit()
}

// Options holds session options.
type Options struct {
	Interactive bool           // Commands are read from a console
	Quiet       bool           // Suppress progress logs; errors and warnings are still logged
	Logger      zerolog.Logger // Destination for all session logs
}

// Session holds the playback state of one pipeline.
// It is not safe for concurrent use: every method must be called from the
// loop goroutine.
type Session struct {
	pipe Controller
	loop Stopper

	log   zerolog.Logger // errors and warnings
	trace zerolog.Logger // progress, disabled when quiet

	state       pipeline.State // Last state reported by the pipeline itself
	target      pipeline.State // Last explicitly requested state
	buffering   bool
	interactive bool
	quitting    bool
}

// NewSession creates a new session for the given pipeline.
func NewSession(pipe Controller, loop Stopper, opts Options) *Session {
	trace := opts.Logger
	if opts.Quiet {
		trace = zerolog.Nop()
	}
	return &Session{
		pipe:        pipe,
		loop:        loop,
		log:         opts.Logger,
		trace:       trace,
		state:       pipeline.StateNull,
		target:      pipeline.StateNull,
		interactive: opts.Interactive,
	}
}

// State returns the last state reported by the pipeline.
func (s *Session) State() pipeline.State {
	return s.state
}

// Target returns the last explicitly requested state.
func (s *Session) Target() pipeline.State {
	return s.target
}

// Buffering returns true while playback is paused for buffering.
func (s *Session) Buffering() bool {
	return s.buffering
}

// Interactive returns true if the session is driven by a console.
func (s *Session) Interactive() bool {
	return s.interactive
}

// Quitting returns true once shutdown has been requested.
func (s *Session) Quitting() bool {
	return s.quitting
}

// Status returns a one-line summary of the session.
func (s *Session) Status() string {
	return fmt.Sprintf("state=%s target=%s buffering=%t", s.state, s.target, s.buffering)
}

// Play requests PLAYING. While buffering, the request is only recorded and
// PLAYING is requested once buffering completes.
func (s *Session) Play() bool {
	s.target = pipeline.StatePlaying
	if s.buffering {
		s.trace.Info().Msg("Buffering, PLAYING deferred until buffering completes ...")
		return true
	}
	return s.setState(pipeline.StatePlaying)
}

// Pause requests PAUSED.
func (s *Session) Pause() bool {
	s.target = pipeline.StatePaused
	return s.setState(pipeline.StatePaused)
}

// Quit requests shutdown of the loop. Only the first call has an effect.
func (s *Session) Quit() {
	if s.quitting {
		return
	}
	s.quitting = true
	s.loop.Quit()
}

// Interrupt handles an interrupt signal.
func (s *Session) Interrupt() {
	s.trace.Info().Msg("handling interrupt.")
	s.Quit()
}

// HandleMessage dispatches one bus message. Messages arriving after a
// shutdown request are dropped.
func (s *Session) HandleMessage(msg pipeline.Message) {
	if s.quitting {
		return
	}
	s.log.Debug().Msgf("player: received %s", msg)

	switch msg.Kind {
	case pipeline.MessageError:
		s.log.Error().Msgf("ERROR: from element %s: %s", msg.Path(), msg.Text)
		if msg.Debug != "" {
			s.log.Error().Msgf("Additional debug info: %s", msg.Debug)
		}
		s.Quit()

	case pipeline.MessageWarning:
		s.log.Warn().Msgf("WARNING: from element %s: %s", msg.Path(), msg.Text)
		if msg.Debug != "" {
			s.log.Warn().Msgf("Additional debug info: %s", msg.Debug)
		}

	case pipeline.MessageEOS:
		s.trace.Info().Msg("Received EOS, quit")
		s.Quit()

	case pipeline.MessageStateChanged:
		if msg.Source != s.pipe.Name() {
			return
		}
		s.onStateChanged(msg.NewState)

	case pipeline.MessageBuffering:
		s.onBuffering(msg.Percent)
	}
}

// onStateChanged records a state reported by the pipeline and advances it
// one step toward the target.
func (s *Session) onStateChanged(state pipeline.State) {
	s.state = state
	s.trace.Info().Msgf("player is %s", state)

	if s.state == s.target {
		return
	}
	if s.buffering {
		// PAUSED -> PLAYING is resumed by the 100% buffering message
		s.log.Debug().Msgf("player: not advancing from %s while buffering", state)
		return
	}

	switch state {
	case pipeline.StateReady:
		if s.target >= pipeline.StatePaused {
			s.setState(pipeline.StatePaused)
		}
	case pipeline.StatePaused:
		if s.target == pipeline.StatePlaying {
			s.setState(pipeline.StatePlaying)
		}
	}
}

// onBuffering pauses playback once per buffering episode and resumes it
// when buffering completes.
func (s *Session) onBuffering(percent int) {
	s.trace.Info().Msgf("buffering %d%%", percent)

	if percent >= 100 {
		s.buffering = false
		if s.target == pipeline.StatePlaying {
			s.trace.Info().Msg("Done buffering, setting pipeline to PLAYING ...")
			s.setState(pipeline.StatePlaying)
		}
		return
	}

	if !s.buffering && s.state == pipeline.StatePlaying {
		s.trace.Info().Msg("Buffering, setting pipeline to PAUSED ...")
		s.setState(pipeline.StatePaused)
		s.buffering = true
	}
}

// setState requests a state change and logs the outcome.
// A refused transition is reported and returned, never retried.
func (s *Session) setState(state pipeline.State) bool {
	name := s.pipe.Name()

	switch ret := s.pipe.SetState(state); ret {
	case pipeline.StateChangeFailure:
		s.log.Error().Msgf("ERROR: %s doesn't want to %s.", name, state.Verb())
		return false
	case pipeline.StateChangeNoPreroll:
		s.trace.Info().Msgf("%s is live and does not need PREROLL ...", name)
	case pipeline.StateChangeAsync:
		s.trace.Info().Msgf("%s is PREROLLING ...", name)
	case pipeline.StateChangeSuccess:
		if state == pipeline.StatePaused {
			s.trace.Info().Msgf("%s is PREROLLED ...", name)
		}
	}
	return true
}
