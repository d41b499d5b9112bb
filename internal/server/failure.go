package server

import (
	"git.appkode.ru/pub/go/failure"

	"quotewise/internal/domain"
	"quotewise/pkg/errcodes"
)

// toFailure переводит доменную ошибку в транспортную: код домена определяет
// HTTP-статус через классификацию failure. Прочие ошибки уходят как есть
// и отвечаются 500.
func toFailure(err error) error {
	code, ok := domain.GetCode(err)
	if !ok {
		return err
	}

	switch code {
	case errcodes.QuoteSetNotFound,
		errcodes.ComparisonNotFound,
		errcodes.SessionNotFound,
		errcodes.GlossaryTermUnknown:
		return failure.NewNotFoundError(
			err.Error(),
			failure.WithCode(code),
			failure.WithDescription(err.Error()),
		)
	case errcodes.MalformedQuote,
		errcodes.EmptyComparison,
		errcodes.DuplicateQuoteID,
		errcodes.AmbiguousUnit,
		errcodes.InvalidWeights,
		errcodes.UnsupportedFormat,
		errcodes.ConfigurationError:
		return failure.NewInvalidArgumentError(
			err.Error(),
			failure.WithCode(code),
			failure.WithDescription(err.Error()),
		)
	default:
		return err
	}
}
