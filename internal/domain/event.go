package domain

// Command is a recognized command token, independent of its display text
type Command int

const (
	CommandNone Command = iota
	CommandStart
	CommandNext
	CommandAddWord
	CommandDeleteWord
	CommandProgress
)

func (c Command) String() string {
	switch c {
	case CommandStart:
		return "start"
	case CommandNext:
		return "next"
	case CommandAddWord:
		return "add_word"
	case CommandDeleteWord:
		return "delete_word"
	case CommandProgress:
		return "progress"
	default:
		return "none"
	}
}

// Event is one inbound user message
type Event struct {
	UserID  int64
	Text    string
	Command Command
}

// IsCommand reports whether the event carries a command token
func (e Event) IsCommand() bool {
	return e.Command != CommandNone
}

// Response is one outbound message.
// Options holds the quiz choices; empty means only the command menu is shown.
type Response struct {
	UserID  int64
	Text    string
	Options []string
}
