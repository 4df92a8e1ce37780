package domain

import "errors"

var (
	// ErrNoWordsAvailable is returned when a quiz round is requested for an empty vocabulary
	ErrNoWordsAvailable = errors.New("no words available")
	// ErrMissingSessionContext is returned when a message needs context the session doesn't carry
	ErrMissingSessionContext = errors.New("missing session context")
	// ErrStoreUnavailable wraps every failed vocabulary store call
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrEmptyWord is returned when a word or translation is blank
	ErrEmptyWord = errors.New("word and translation cannot be empty")
)
