package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"quotewise/internal/domain"
	"quotewise/pkg/errcodes"
)

// Store хранит привязку чата к активному набору котировок. Диалог переживает
// рестарт сервиса: состояние лежит в Redis с TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func key(chatID int64) string {
	return fmt.Sprintf("session:%d:quote_set", chatID)
}

// BindQuoteSet делает набор активным для чата.
func (s *Store) BindQuoteSet(ctx context.Context, chatID int64, setID string) error {
	if err := s.client.Set(ctx, key(chatID), setID, s.ttl).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to bind quote set")
	}

	return nil
}

// ActiveQuoteSet возвращает набор, привязанный к чату.
func (s *Store) ActiveQuoteSet(ctx context.Context, chatID int64) (string, error) {
	setID, err := s.client.Get(ctx, key(chatID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.NewError(errcodes.SessionNotFound, "no active quote set for chat")
		}

		return "", domain.WrapError(err, errcodes.InternalServerError, "failed to get active quote set")
	}

	// Продлеваем сессию при каждом обращении.
	_ = s.client.Expire(ctx, key(chatID), s.ttl).Err()

	return setID, nil
}

// Clear снимает привязку.
func (s *Store) Clear(ctx context.Context, chatID int64) error {
	if err := s.client.Del(ctx, key(chatID)).Err(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to clear session")
	}

	return nil
}
