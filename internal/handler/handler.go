package handler

import (
	"context"
	"time"

	"wordcards/internal/dispatch"
	"wordcards/internal/domain"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Conversation handles one user event and returns the replies
type Conversation interface {
	Handle(ctx context.Context, ev domain.Event) ([]domain.Response, error)
}

// Sender delivers messages; *tele.Bot implements it
type Sender interface {
	Send(to tele.Recipient, what interface{}, opts ...interface{}) (*tele.Message, error)
}

// Handler manages all bot interactions
type Handler struct {
	sender       Sender
	conversation Conversation
	queue        *dispatch.Queue
	timeout      time.Duration
	logger       *zap.Logger
}

// NewHandler creates a new handler instance
func NewHandler(
	sender Sender,
	conversation Conversation,
	queue *dispatch.Queue,
	timeout time.Duration,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		sender:       sender,
		conversation: conversation,
		queue:        queue,
		timeout:      timeout,
		logger:       logger,
	}
}

// RegisterHandlers registers all bot handlers
func (h *Handler) RegisterHandlers(bot *tele.Bot, middlewares ...tele.MiddlewareFunc) {
	bot.Use(middlewares...)

	// Commands
	bot.Handle("/start", h.handleStart)
	bot.Handle("/cards", h.handleStart)

	// Menu buttons and free text
	bot.Handle(tele.OnText, h.handleText)
}

// Reply keyboard buttons
var (
	btnNext       = tele.Btn{Text: "Дальше ⏭"}
	btnAddWord    = tele.Btn{Text: "Добавить слово ➕"}
	btnDeleteWord = tele.Btn{Text: "Удалить слово🔙"}
	btnProgress   = tele.Btn{Text: "Прогресс"}
)

// menuCommands maps button texts to commands
var menuCommands = map[string]domain.Command{
	btnNext.Text:       domain.CommandNext,
	btnAddWord.Text:    domain.CommandAddWord,
	btnDeleteWord.Text: domain.CommandDeleteWord,
	btnProgress.Text:   domain.CommandProgress,
}

// optionsPerRow is the number of quiz options in a keyboard row
const optionsPerRow = 2

// replyMarkup renders quiz options above the command menu
func replyMarkup(options []string) *tele.ReplyMarkup {
	markup := &tele.ReplyMarkup{ResizeKeyboard: true}

	buttons := make([]tele.Btn, 0, len(options))
	for _, o := range options {
		buttons = append(buttons, markup.Text(o))
	}

	rows := markup.Split(optionsPerRow, buttons)
	rows = append(rows, markup.Row(btnNext, btnAddWord, btnDeleteWord, btnProgress))
	markup.Reply(rows...)
	return markup
}
