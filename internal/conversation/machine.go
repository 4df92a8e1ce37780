// Package conversation implements the per-user dialog state machine:
// quiz rounds, answer checking, the add-word dialog, word deletion and progress.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"wordcards/internal/domain"
	"wordcards/internal/service"
	"wordcards/internal/session"

	"go.uber.org/zap"
)

// UserRegistrar registers users idempotently
type UserRegistrar interface {
	Register(ctx context.Context, userID int64) error
}

// WordStore reads and changes the user's vocabulary
type WordStore interface {
	ListWords(ctx context.Context, userID int64) ([]domain.WordRecord, error)
	AddWord(ctx context.Context, userID int64, word, translation string) error
	RemoveWord(ctx context.Context, userID int64, word string) error
	RecordCorrectAnswer(ctx context.Context, userID int64, word string) error
}

// ProgressReader loads the user's progress summary
type ProgressReader interface {
	Progress(ctx context.Context, userID int64) (domain.Progress, error)
}

// Quiz selects rounds and checks answers
type Quiz interface {
	SelectRound(words []domain.WordRecord) (domain.WordRecord, []domain.QuizOption, error)
	OptionsFor(words []domain.WordRecord, target domain.WordRecord) []domain.QuizOption
	EvaluateAnswer(submitted, target string) bool
}

// Machine drives every user's conversation
type Machine struct {
	users    UserRegistrar
	words    WordStore
	stats    ProgressReader
	quiz     Quiz
	sessions *session.Store
	logger   *zap.Logger
}

// NewMachine creates a new conversation state machine
func NewMachine(
	users UserRegistrar,
	words WordStore,
	stats ProgressReader,
	quiz Quiz,
	sessions *session.Store,
	logger *zap.Logger,
) *Machine {
	return &Machine{
		users:    users,
		words:    words,
		stats:    stats,
		quiz:     quiz,
		sessions: sessions,
		logger:   logger,
	}
}

// turn collects the outcome of handling one event
type turn struct {
	userID    int64
	next      domain.Session
	responses []domain.Response
	err       error
}

func (t *turn) say(text string, options ...string) {
	t.responses = append(t.responses, domain.Response{
		UserID:  t.userID,
		Text:    text,
		Options: options,
	})
}

// fail reports a store failure and moves to state
func (t *turn) fail(err error, state domain.Session) {
	t.err = err
	t.next = state
	t.say(msgStoreFailure)
}

// Handle processes one inbound event while holding the user's session lock.
// On store failure it returns the user-visible failure response together with the error.
func (m *Machine) Handle(ctx context.Context, ev domain.Event) ([]domain.Response, error) {
	h := m.sessions.Acquire(ev.UserID)
	defer h.Release()

	cur := h.State()
	t := &turn{userID: ev.UserID, next: cur}

	switch ev.Command {
	case domain.CommandStart, domain.CommandNext:
		m.startQuiz(ctx, t, cur, msgNoWords)
	case domain.CommandAddWord:
		t.next = domain.AwaitingNewWord{}
		t.say(msgSendNewWord)
	case domain.CommandDeleteWord:
		m.deleteWord(ctx, t, cur)
	case domain.CommandProgress:
		m.progress(ctx, t)
	default:
		m.freeText(ctx, t, cur, ev.Text)
	}

	h.Set(t.next)

	m.logger.Debug("Conversation transition",
		zap.Int64("user_id", ev.UserID),
		zap.Stringer("command", ev.Command),
		zap.String("from", string(cur.Tag())),
		zap.String("to", string(t.next.Tag())),
	)
	return t.responses, t.err
}

// startQuiz is the only writer of AwaitingTargetAnswer.
// On failure the session falls back to onError.
func (m *Machine) startQuiz(ctx context.Context, t *turn, onError domain.Session, emptyText string) {
	if err := m.users.Register(ctx, t.userID); err != nil {
		t.fail(err, onError)
		return
	}

	words, err := m.words.ListWords(ctx, t.userID)
	if err != nil {
		t.fail(err, onError)
		return
	}

	target, options, err := m.quiz.SelectRound(words)
	if errors.Is(err, domain.ErrNoWordsAvailable) {
		t.next = domain.Idle{}
		t.say(emptyText)
		return
	}
	if err != nil {
		t.fail(err, onError)
		return
	}

	t.next = domain.AwaitingTargetAnswer{Target: target.Target, Translation: target.Translation}
	t.say(fmt.Sprintf(msgChooseTranslation, target.Translation), service.OptionLabels(options)...)
}

func (m *Machine) deleteWord(ctx context.Context, t *turn, cur domain.Session) {
	round, ok := cur.(domain.AwaitingTargetAnswer)
	if !ok {
		t.say(msgNothingToDelete)
		return
	}

	if err := m.words.RemoveWord(ctx, t.userID, round.Target); err != nil {
		t.fail(err, cur)
		return
	}

	t.say(fmt.Sprintf(msgWordDeleted, round.Target))
	m.startQuiz(ctx, t, domain.Idle{}, msgNoWordsLeft)
}

func (m *Machine) progress(ctx context.Context, t *turn) {
	p, err := m.stats.Progress(ctx, t.userID)
	if err != nil {
		t.fail(err, t.next)
		return
	}

	if p.IsEmpty() {
		t.say(msgProgressEmpty)
		return
	}
	t.say(fmt.Sprintf(msgProgress, p.WordCount, p.TotalCorrect))
}

// freeText interprets a non-command message; the current state alone decides its meaning
func (m *Machine) freeText(ctx context.Context, t *turn, cur domain.Session, text string) {
	switch s := cur.(type) {
	case domain.AwaitingNewWord:
		word := strings.TrimSpace(text)
		if word == "" {
			t.say(msgSendNewWord)
			return
		}
		t.next = domain.AwaitingTranslation{NewWord: word}
		t.say(msgSendTranslation)

	case domain.AwaitingTranslation:
		m.addWord(ctx, t, s, text)

	case domain.AwaitingTargetAnswer:
		m.answer(ctx, t, s, text)

	default:
		m.logger.Warn("Free text without active round",
			zap.Int64("user_id", t.userID),
			zap.Error(domain.ErrMissingSessionContext),
		)
		t.next = domain.Idle{}
		t.say(msgSomethingWrong)
	}
}

func (m *Machine) addWord(ctx context.Context, t *turn, s domain.AwaitingTranslation, text string) {
	translation := strings.TrimSpace(text)
	err := m.words.AddWord(ctx, t.userID, s.NewWord, translation)
	if errors.Is(err, domain.ErrEmptyWord) {
		t.say(msgSendTranslation)
		return
	}
	if err != nil {
		t.fail(err, s)
		return
	}

	m.logger.Info("Word added",
		zap.Int64("user_id", t.userID),
		zap.String("word", s.NewWord),
		zap.String("translation", translation),
	)

	t.say(fmt.Sprintf(msgWordAdded, s.NewWord, translation))
	m.startQuiz(ctx, t, domain.Idle{}, msgNoWords)
}

func (m *Machine) answer(ctx context.Context, t *turn, round domain.AwaitingTargetAnswer, text string) {
	if m.quiz.EvaluateAnswer(text, round.Target) {
		if err := m.words.RecordCorrectAnswer(ctx, t.userID, round.Target); err != nil {
			t.fail(err, round)
			return
		}
		t.say(fmt.Sprintf(msgCorrect, round.Target, round.Translation))
		m.startQuiz(ctx, t, domain.Idle{}, msgNoWords)
		return
	}

	words, err := m.words.ListWords(ctx, t.userID)
	if err != nil {
		t.fail(err, round)
		return
	}

	target := domain.WordRecord{Target: round.Target, Translation: round.Translation}
	options := m.quiz.OptionsFor(words, target)
	t.say(fmt.Sprintf(msgWrong, round.Translation), service.OptionLabels(options)...)
}
