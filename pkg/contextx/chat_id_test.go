package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"quotewise/pkg/contextx"
)

func TestChatID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	var testChatIDEmpty contextx.ChatID

	testChatIDNotEmpty := contextx.ChatID("test-chat-id")

	chatID, err := contextx.ChatIDFromContext(ctx)
	rq.Equal(testChatIDEmpty, chatID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "chat id: no value in context")

	ctx = contextx.WithChatID(ctx, testChatIDNotEmpty)

	chatID, err = contextx.ChatIDFromContext(ctx)
	rq.Equal(testChatIDNotEmpty, chatID)
	rq.NoError(err)
}
