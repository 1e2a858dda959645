// Package apperrors defines the closed error taxonomy shared by the domain
// services and the HTTP boundary. Every domain failure is one of four kinds;
// the boundary derives the HTTP status and wire code from the kind alone.
package apperrors

import "net/http"

// Kind tags an Error with its taxonomy entry.
type Kind int

const (
	// KindInvalidData covers malformed or missing input and business-rule
	// violations such as a duplicate product name.
	KindInvalidData Kind = iota
	// KindNotFound covers references to absent documents.
	KindNotFound
	// KindStockProblem covers sale quantities exceeding available stock.
	KindStockProblem
	// KindInternal covers everything unclassified.
	KindInternal
)

// Error is a domain failure carrying a user-facing message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status the boundary renders for this error.
func (e *Error) Status() int {
	switch e.Kind {
	case KindInvalidData:
		return http.StatusUnprocessableEntity
	case KindNotFound, KindStockProblem:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the machine-readable code the boundary renders.
func (e *Error) Code() string {
	switch e.Kind {
	case KindInvalidData:
		return "invalid_data"
	case KindNotFound:
		return "not_found"
	case KindStockProblem:
		return "stock_problem"
	default:
		return "Internal Server Error"
	}
}

// InvalidData returns a new KindInvalidData error.
func InvalidData(message string) *Error {
	return &Error{Kind: KindInvalidData, Message: message}
}

// NotFound returns a new KindNotFound error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// StockProblem returns a new KindStockProblem error.
func StockProblem(message string) *Error {
	return &Error{Kind: KindStockProblem, Message: message}
}

// Internal returns a new KindInternal error.
func Internal(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}
