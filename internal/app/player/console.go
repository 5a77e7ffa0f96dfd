package player

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
)

// LineReader reads console lines. *readline.Instance implements it.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

// Command is an interactive console command.
type Command int

const (
	CommandUnknown Command = iota
	CommandNone            // Empty line
	CommandPlay
	CommandPause
	CommandQuit
	CommandStatus
	CommandHelp
)

// String returns the string representation of the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "none"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandQuit:
		return "quit"
	case CommandStatus:
		return "status"
	case CommandHelp:
		return "help"
	default:
		return "unknown"
	}
}

// ParseCommand parses a console line.
func ParseCommand(line string) Command {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		return CommandNone
	case "p", "play", "r", "resume":
		return CommandPlay
	case "s", "pause":
		return CommandPause
	case "q", "quit", "exit":
		return CommandQuit
	case "status":
		return CommandStatus
	case "h", "help", "?":
		return CommandHelp
	default:
		return CommandUnknown
	}
}

const consoleHelp = `Commands:
  play, p     set the pipeline to PLAYING
  pause, s    set the pipeline to PAUSED
  status      show the player state
  quit, q     stop playback and exit
  help, h     show this help`

// Console turns console lines into session commands.
// Lines are read on their own goroutine; commands run on the loop goroutine.
type Console struct {
	reader  LineReader
	out     io.Writer
	loop    *Loop
	session *Session

	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewConsole creates a new console.
func NewConsole(reader LineReader, out io.Writer, loop *Loop, session *Session) *Console {
	return &Console{
		reader:  reader,
		out:     out,
		loop:    loop,
		session: session,
	}
}

// Start starts reading lines.
func (c *Console) Start() {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.readLoop()
	}()
}

// Close closes the reader and waits for the read goroutine to exit.
func (c *Console) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.reader.Close()
	})
	c.wg.Wait()
	return err
}

func (c *Console) readLoop() {
	for {
		line, err := c.reader.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				c.loop.Post(c.session.Interrupt)
				return
			}
			if !errors.Is(err, io.EOF) {
				c.session.log.Warn().Err(err).Msg("console: read failed")
			}
			c.loop.Post(c.session.Quit)
			return
		}

		cmd := ParseCommand(line)
		if !c.loop.Post(func() { c.execute(cmd, line) }) {
			return
		}
	}
}

// execute runs a command. Must be called on the loop goroutine.
func (c *Console) execute(cmd Command, line string) {
	switch cmd {
	case CommandNone:
	case CommandPlay:
		c.session.Play()
	case CommandPause:
		c.session.Pause()
	case CommandQuit:
		c.session.Quit()
	case CommandStatus:
		fmt.Fprintln(c.out, c.session.Status())
	case CommandHelp:
		fmt.Fprintln(c.out, consoleHelp)
	default:
		c.session.log.Warn().Msgf("console: unknown command: %q (type help)", strings.TrimSpace(line))
	}
}
