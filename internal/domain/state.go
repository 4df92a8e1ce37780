package domain

// StateTag names the step of the conversation a user is in
type StateTag string

const (
	StateIdle                 StateTag = "idle"
	StateAwaitingTargetAnswer StateTag = "awaiting_target_answer"
	StateAwaitingNewWord      StateTag = "awaiting_new_word"
	StateAwaitingTranslation  StateTag = "awaiting_translation"
)

// Session is the transient conversation state of one user.
// Every variant carries exactly the context its step needs.
type Session interface {
	Tag() StateTag
	session()
}

// Idle means no quiz round or dialog is active
type Idle struct{}

// AwaitingTargetAnswer holds the active quiz round
type AwaitingTargetAnswer struct {
	Target      string
	Translation string
}

// AwaitingNewWord waits for the word to add
type AwaitingNewWord struct{}

// AwaitingTranslation waits for the translation of NewWord
type AwaitingTranslation struct {
	NewWord string
}

func (Idle) Tag() StateTag                 { return StateIdle }
func (AwaitingTargetAnswer) Tag() StateTag { return StateAwaitingTargetAnswer }
func (AwaitingNewWord) Tag() StateTag      { return StateAwaitingNewWord }
func (AwaitingTranslation) Tag() StateTag  { return StateAwaitingTranslation }

func (Idle) session()                 {}
func (AwaitingTargetAnswer) session() {}
func (AwaitingNewWord) session()      {}
func (AwaitingTranslation) session()  {}
