package compare

import (
	"context"
	"fmt"
	"sort"

	"quotewise/internal/domain"
	"quotewise/internal/domain/entity"
	"quotewise/pkg/errcodes"
)

// CurrencyConverter приводит денежные атрибуты к базовой валюте.
// Реализация — infrastructure/rates; в тестах статическая таблица.
type CurrencyConverter interface {
	Convert(ctx context.Context, amount float64, currency string) (float64, error)
	Supports(currency string) bool
}

// Normalize приводит сырые котировки к канонической схеме.
//
// Для каждого атрибута схемы: прямое совпадение копируется как есть,
// синоним переводится через таблицу алиасов, отсутствующее значение
// берётся из opts.Defaults либо исключается из скоринга этой котировки
// (никогда не выдумывается), а сама котировка помечается Complete=false.
func (e *Engine) Normalize(ctx context.Context, quotes []entity.Quote, opts Options) ([]entity.NormalizedQuote, error) {
	if len(quotes) == 0 {
		return nil, domain.NewError(errcodes.EmptyComparison, "no quotes to normalize")
	}

	seen := make(map[string]struct{}, len(quotes))

	normalized := make([]entity.NormalizedQuote, 0, len(quotes))

	for _, quote := range quotes {
		if _, dup := seen[quote.ID]; dup {
			return nil, domain.NewError(errcodes.DuplicateQuoteID,
				fmt.Sprintf("duplicate quote id %q", quote.ID))
		}
		seen[quote.ID] = struct{}{}

		nq, err := e.normalizeOne(ctx, quote, opts)
		if err != nil {
			return nil, err
		}

		normalized = append(normalized, nq)
	}

	return normalized, nil
}

func (e *Engine) normalizeOne(ctx context.Context, quote entity.Quote, opts Options) (entity.NormalizedQuote, error) {
	names := make([]string, 0, len(quote.Attributes))
	for name := range quote.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	attrs := make(map[string]float64, len(quote.Attributes))
	exact := make(map[string]bool, len(quote.Attributes))

	for _, name := range names {
		canonical, aliased := e.aliases.Resolve(name)

		// Коллизия на одном каноническом имени ("cost" и "price" в одной
		// котировке): точное имя побеждает синоним, среди синонимов —
		// первый по алфавиту. Порядок обхода map роли не играет.
		if wasExact, ok := exact[canonical]; ok && (wasExact || aliased) {
			continue
		}

		converted, err := e.convertUnit(ctx, quote, name, quote.Attributes[name])
		if err != nil {
			return entity.NormalizedQuote{}, err
		}

		attrs[canonical] = converted
		exact[canonical] = !aliased
	}

	complete := true

	for _, required := range opts.Schema {
		if _, ok := attrs[required]; ok {
			continue
		}

		complete = false

		if def, ok := opts.Defaults[required]; ok {
			attrs[required] = def
		}
	}

	if len(attrs) == 0 {
		return entity.NormalizedQuote{}, domain.NewError(errcodes.MalformedQuote,
			fmt.Sprintf("quote %q has no usable numeric attributes", quote.ID))
	}

	return entity.NormalizedQuote{
		ID:         quote.ID,
		Provider:   quote.Provider,
		Attributes: attrs,
		Complete:   complete,
	}, nil
}

// convertUnit переводит значение в канонические единицы. Неизвестная
// единица — отказ сразу, молча интерпретировать её нельзя.
func (e *Engine) convertUnit(ctx context.Context, quote entity.Quote, attr string, val float64) (float64, error) {
	unit, ok := quote.Units[attr]
	if !ok || unit == "" {
		return val, nil
	}

	if e.converter == nil || !e.converter.Supports(unit) {
		return 0, domain.NewError(errcodes.AmbiguousUnit,
			fmt.Sprintf("quote %q: attribute %q has unknown unit %q", quote.ID, attr, unit))
	}

	converted, err := e.converter.Convert(ctx, val, unit)
	if err != nil {
		return 0, domain.WrapError(err, errcodes.AmbiguousUnit,
			fmt.Sprintf("quote %q: convert %q from %q", quote.ID, attr, unit))
	}

	return converted, nil
}
