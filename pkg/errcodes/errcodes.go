package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	// Comparison engine.
	MalformedQuote     failure.ErrorCode = "MalformedQuoteError"  // quote has no usable numeric attributes
	EmptyComparison    failure.ErrorCode = "EmptyComparisonError" // nothing to compare
	ConfigurationError failure.ErrorCode = "ConfigurationError"   // weights match no attribute in the set
	DuplicateQuoteID   failure.ErrorCode = "DuplicateQuoteID"
	AmbiguousUnit      failure.ErrorCode = "AmbiguousUnit" // attribute carries an unknown unit tag
	InvalidWeights     failure.ErrorCode = "InvalidWeights"

	// Quote sets, ingestion, chat sessions.
	QuoteSetNotFound    failure.ErrorCode = "QuoteSetNotFound"
	ComparisonNotFound  failure.ErrorCode = "ComparisonNotFound"
	UnsupportedFormat   failure.ErrorCode = "UnsupportedFormat" // loader got a file it cannot parse
	GlossaryTermUnknown failure.ErrorCode = "GlossaryTermUnknown"
	SessionNotFound     failure.ErrorCode = "SessionNotFound"
)
