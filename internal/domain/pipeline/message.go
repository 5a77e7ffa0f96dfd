package pipeline

import "fmt"

// MessageKind represents the type of a bus message.
type MessageKind int

const (
	MessageUnknown      MessageKind = iota // Anything the player does not handle
	MessageError                           // Fatal error from an element
	MessageWarning                         // Non-fatal warning from an element
	MessageEOS                             // End of stream
	MessageStateChanged                    // An object changed state
	MessageBuffering                       // Buffering progress
)

// String returns the string representation of the message kind.
func (k MessageKind) String() string {
	switch k {
	case MessageError:
		return "error"
	case MessageWarning:
		return "warning"
	case MessageEOS:
		return "eos"
	case MessageStateChanged:
		return "state-changed"
	case MessageBuffering:
		return "buffering"
	default:
		return "unknown"
	}
}

// Message is a bus message with its payload already parsed.
// Only the fields matching Kind are meaningful.
type Message struct {
	Kind MessageKind

	Source     string // Name of the posting object
	SourcePath string // Full object path, e.g. /GstPipeline:p/GstBin:bin0/GstFakeSink:sink

	// Error / warning
	Text  string
	Debug string

	// Buffering
	Percent int

	// State changed
	OldState     State
	NewState     State
	PendingState State
}

// Path returns the source path, falling back to the source name.
func (m Message) Path() string {
	if m.SourcePath != "" {
		return m.SourcePath
	}
	return m.Source
}

// String returns a short description for debug logs.
func (m Message) String() string {
	switch m.Kind {
	case MessageBuffering:
		return fmt.Sprintf("%s from %s: %d%%", m.Kind, m.Source, m.Percent)
	case MessageStateChanged:
		return fmt.Sprintf("%s from %s: %s -> %s (pending %s)", m.Kind, m.Source, m.OldState, m.NewState, m.PendingState)
	case MessageError, MessageWarning:
		return fmt.Sprintf("%s from %s: %s", m.Kind, m.Source, m.Text)
	default:
		return fmt.Sprintf("%s from %s", m.Kind, m.Source)
	}
}

// NewStateChanged creates a state-changed message.
func NewStateChanged(source string, oldState, newState, pending State) Message {
	return Message{
		Kind:         MessageStateChanged,
		Source:       source,
		OldState:     oldState,
		NewState:     newState,
		PendingState: pending,
	}
}

// NewBuffering creates a buffering message.
func NewBuffering(source string, percent int) Message {
	return Message{Kind: MessageBuffering, Source: source, Percent: percent}
}

// NewError creates an error message.
func NewError(source, text, debug string) Message {
	return Message{Kind: MessageError, Source: source, Text: text, Debug: debug}
}

// NewWarning creates a warning message.
func NewWarning(source, text, debug string) Message {
	return Message{Kind: MessageWarning, Source: source, Text: text, Debug: debug}
}

// NewEOS creates an end-of-stream message.
func NewEOS(source string) Message {
	return Message{Kind: MessageEOS, Source: source}
}
