package handler

import (
	"context"
	"strings"
	"unicode"

	"wordcards/internal/domain"
	"wordcards/internal/middleware"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// cleanText removes all non-printable characters and surrounding whitespace
func cleanText(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, strings.TrimSpace(text))
}

// parseCommand recognizes menu buttons; anything else is free text
func parseCommand(text string) domain.Command {
	if cmd, ok := menuCommands[cleanText(text)]; ok {
		return cmd
	}
	return domain.CommandNone
}

// handleStart handles /start and /cards commands
func (h *Handler) handleStart(c tele.Context) error {
	h.logger.Info("User started quiz",
		zap.Int64("user_id", c.Sender().ID),
		zap.String("username", c.Sender().Username),
	)
	return h.dispatch(c, domain.Event{
		UserID:  c.Sender().ID,
		Text:    c.Text(),
		Command: domain.CommandStart,
	})
}

// handleText handles menu buttons and free text messages.
// Free text keeps its inner characters; only surrounding whitespace is trimmed.
func (h *Handler) handleText(c tele.Context) error {
	text := strings.TrimSpace(c.Text())

	// Ignore unknown commands (starting with /)
	if strings.HasPrefix(text, "/") {
		return nil
	}

	return h.dispatch(c, domain.Event{
		UserID:  c.Sender().ID,
		Text:    text,
		Command: parseCommand(text),
	})
}

// dispatch queues the event behind earlier events of the same user
func (h *Handler) dispatch(c tele.Context, ev domain.Event) error {
	chat := c.Chat()
	requestID, _ := c.Get(middleware.RequestIDKey).(string)

	return h.queue.Submit(ev.UserID, func() {
		h.process(chat, requestID, ev)
	})
}

func (h *Handler) process(to tele.Recipient, requestID string, ev domain.Event) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	logger := h.logger.With(
		zap.Int64("user_id", ev.UserID),
		zap.String("request_id", requestID),
		zap.Stringer("command", ev.Command),
	)

	responses, err := h.conversation.Handle(ctx, ev)
	if err != nil {
		logger.Error("Failed to handle message", zap.Error(err))
	}

	for _, r := range responses {
		if _, err := h.sender.Send(to, r.Text, replyMarkup(r.Options)); err != nil {
			logger.Error("Failed to send message", zap.Error(err))
			return
		}
	}
}
