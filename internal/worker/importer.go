package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"quotewise/internal/domain/entity"
	"quotewise/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const TypeImportQuoteFile = "quotes:import_file"

// ImportPayload — задача фонового импорта файла с котировками.
// ChatID не ноль, когда импорт запущен из диалога: готовый набор
// привязывается к чату как активный.
type ImportPayload struct {
	Path   string `json:"path"`
	ChatID int64  `json:"chat_id,omitempty"`
}

func NewImportTask(path string, chatID int64) (*asynq.Task, error) {
	payload, err := json.Marshal(ImportPayload{Path: path, ChatID: chatID})
	if err != nil {
		return nil, fmt.Errorf("marshal import payload: %w", err)
	}

	return asynq.NewTask(TypeImportQuoteFile, payload), nil
}

type QuoteFileLoader interface {
	LoadFile(path string) ([]entity.Quote, error)
}

type QuoteSetCreator interface {
	CreateQuoteSet(ctx context.Context, quotes []entity.Quote) (*entity.QuoteSet, error)
}

type SessionBinder interface {
	BindQuoteSet(ctx context.Context, chatID int64, setID string) error
}

// Importer обрабатывает задачи импорта: файл -> набор котировок -> (опционально)
// активная сессия чата.
type Importer struct {
	loader   QuoteFileLoader
	sets     QuoteSetCreator
	sessions SessionBinder
}

func NewImporter(loader QuoteFileLoader, sets QuoteSetCreator) *Importer {
	return &Importer{
		loader: loader,
		sets:   sets,
	}
}

func (i *Importer) WithSessions(sessions SessionBinder) *Importer {
	i.sessions = sessions
	return i
}

func (i *Importer) HandleImport(ctx context.Context, task *asynq.Task) error {
	var payload ImportPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("unmarshal import payload: %w", err)
	}

	quotes, err := i.loader.LoadFile(payload.Path)
	if err != nil {
		return fmt.Errorf("loader.LoadFile: %w", err)
	}

	set, err := i.sets.CreateQuoteSet(ctx, quotes)
	if err != nil {
		return fmt.Errorf("sets.CreateQuoteSet: %w", err)
	}

	logger(ctx).Info("quote file imported",
		"path", payload.Path, "set_id", set.ID, "quotes", len(set.Quotes))

	if payload.ChatID != 0 && i.sessions != nil {
		if err := i.sessions.BindQuoteSet(ctx, payload.ChatID, set.ID); err != nil {
			logger(ctx).Error("sessions.BindQuoteSet", "error", err)
		}
	}

	return nil
}
