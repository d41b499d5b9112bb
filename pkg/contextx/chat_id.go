package contextx

import (
	"context"
	"fmt"
)

type ChatID string

type contextKeyChatID struct{}

func (c ChatID) String() string {
	return string(c)
}

func WithChatID(ctx context.Context, chatID ChatID) context.Context {
	return context.WithValue(ctx, contextKeyChatID{}, chatID)
}

func ChatIDFromContext(ctx context.Context) (ChatID, error) {
	chatID, ok := ctx.Value(contextKeyChatID{}).(ChatID)
	if !ok {
		return "", fmt.Errorf("chat id: %w", ErrNoValue)
	}

	return chatID, nil
}
