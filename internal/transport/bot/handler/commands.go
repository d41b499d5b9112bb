package handler

import (
	"context"
	"strconv"
	"strings"

	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"

	"quotewise/internal/domain/service/advisor"
	"quotewise/internal/transport/bot/view"
	"quotewise/pkg/contextx"
	"quotewise/pkg/logx"
)

// withChat помечает контекст идентификатором чата, он попадает в логи
// всех вызовов ниже по стеку.
func withChat(ctx *th.Context, chatID int64) context.Context {
	id := contextx.ChatID(strconv.FormatInt(chatID, 10))

	tagged := contextx.WithChatID(ctx, id)

	return contextx.WithLogger(
		tagged,
		contextx.LoggerFromContextOrDefault(tagged).With(logx.Stringer(logx.FieldChatID, id)),
	)
}

func (h *Handler) OnStart(ctx *th.Context, msg telego.Message) error {
	return h.sendHTML(ctx, msg.Chat.ID, view.StartMessage)
}

func (h *Handler) OnUse(ctx *th.Context, msg telego.Message) error {
	parts := strings.Fields(msg.Text)
	if len(parts) < 2 { //nolint:mnd
		return h.sendText(ctx, msg.Chat.ID, view.UseMissingArgument)
	}

	setID := parts[1]
	chatCtx := withChat(ctx, msg.Chat.ID)

	set, err := h.comparisons.GetQuoteSet(chatCtx, setID)
	if err != nil {
		return h.sendText(ctx, msg.Chat.ID, errorText(err))
	}

	if err := h.sessions.BindQuoteSet(chatCtx, msg.Chat.ID, set.ID); err != nil {
		return h.sendText(ctx, msg.Chat.ID, errorText(err))
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.QuoteSetBound(set.ID, len(set.Quotes)))
}

func (h *Handler) OnBest(ctx *th.Context, msg telego.Message) error {
	chatCtx := withChat(ctx, msg.Chat.ID)

	setID, err := h.sessions.ActiveQuoteSet(chatCtx, msg.Chat.ID)
	if err != nil {
		return h.sendText(ctx, msg.Chat.ID, view.NoActiveQuoteSet)
	}

	result, err := h.comparisons.CompareSet(chatCtx, setID, nil)
	if err != nil {
		return h.sendText(ctx, msg.Chat.ID, errorText(err))
	}

	return h.sendHTML(ctx, msg.Chat.ID, view.ComparisonMessage(result))
}

func (h *Handler) OnExplain(ctx *th.Context, msg telego.Message) error {
	parts := strings.SplitN(msg.Text, " ", 2) //nolint:mnd
	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return h.sendText(ctx, msg.Chat.ID, view.ExplainMissingArgument)
	}

	answer, ok := h.glossary.Answer(strings.TrimSpace(parts[1]))
	if !ok {
		return h.sendText(ctx, msg.Chat.ID, view.TermUnknown)
	}

	return h.sendText(ctx, msg.Chat.ID, answer)
}

func (h *Handler) OnClear(ctx *th.Context, msg telego.Message) error {
	if err := h.sessions.Clear(withChat(ctx, msg.Chat.ID), msg.Chat.ID); err != nil {
		return h.sendText(ctx, msg.Chat.ID, errorText(err))
	}

	return h.sendText(ctx, msg.Chat.ID, view.SessionCleared)
}

// OnQuestion — свободный текст: вопрос к ассистенту по активному набору.
// Без активного набора вопрос всё равно уходит ассистенту: он может
// ответить из глоссария.
func (h *Handler) OnQuestion(ctx *th.Context, msg telego.Message) error {
	if strings.HasPrefix(msg.Text, "/") {
		return nil
	}

	ask := advisor.Ask{Question: msg.Text}
	chatCtx := withChat(ctx, msg.Chat.ID)

	if setID, err := h.sessions.ActiveQuoteSet(chatCtx, msg.Chat.ID); err == nil {
		set, err := h.comparisons.GetQuoteSet(chatCtx, setID)
		if err != nil {
			return h.sendText(ctx, msg.Chat.ID, errorText(err))
		}

		ask.Quotes = set.Quotes
	}

	answer, err := h.advisor.Ask(chatCtx, ask)
	if err != nil {
		return h.sendText(ctx, msg.Chat.ID, errorText(err))
	}

	return h.sendText(ctx, msg.Chat.ID, answer.Text)
}

func (h *Handler) sendText(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID: telego.ChatID{ID: chatID},
		Text:   text,
	})

	return err //nolint:wrapcheck
}

func (h *Handler) sendHTML(ctx *th.Context, chatID int64, text string) error {
	_, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:    telego.ChatID{ID: chatID},
		Text:      text,
		ParseMode: telego.ModeHTML,
	})

	return err //nolint:wrapcheck
}

func errorText(err error) string {
	return "⚠️ " + err.Error()
}
