package middleware

import (
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

// AdminOnly пропускает обновления только от заданного пользователя.
// adminID == 0 отключает проверку: бот отвечает всем.
func AdminOnly(adminID int64) th.Handler {
	return func(ctx *th.Context, update telego.Update) error {
		if adminID == 0 {
			return ctx.Next(update)
		}

		var userID int64

		if update.Message != nil {
			userID = update.Message.From.ID
		} else if update.CallbackQuery != nil {
			userID = update.CallbackQuery.From.ID
		} else {
			return nil
		}

		if userID == adminID {
			return ctx.Next(update)
		}

		return nil
	}
}
