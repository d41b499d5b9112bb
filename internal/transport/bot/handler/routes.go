package handler

import (
	th "github.com/mymmrac/telego/telegohandler"

	"quotewise/internal/transport/bot/middleware"
)

func (h *Handler) RegisterRoutes(bh *th.BotHandler, adminID int64) {
	group := bh.Group(th.AnyMessage())
	group.Use(middleware.AdminOnly(adminID))

	group.HandleMessage(h.OnStart, th.CommandEqual("start"))
	group.HandleMessage(h.OnStart, th.CommandEqual("help"))
	group.HandleMessage(h.OnUse, th.CommandEqual("use"))
	group.HandleMessage(h.OnBest, th.CommandEqual("best"))
	group.HandleMessage(h.OnExplain, th.CommandEqual("explain"))
	group.HandleMessage(h.OnClear, th.CommandEqual("clear"))

	// Свободный текст — вопрос к ассистенту по активному набору.
	group.HandleMessage(h.OnQuestion, th.AnyMessageWithText())
}
