package engine

import (
	"errors"
	"fmt"
)

// ErrorKind classifies every failure the engine can report. Callers branch on
// the kind, never on error message text.
type ErrorKind string

const (
	KindValidation ErrorKind = "VALIDATION"
	KindNotFound   ErrorKind = "NOT_FOUND"
	KindGateway    ErrorKind = "GATEWAY"
	KindConflict   ErrorKind = "CONFLICT"
)

type TradeError struct {
	Kind    ErrorKind
	Op      string
	Symbol  string
	Message string
	Err     error
}

func (e *TradeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s %s: %s: %v", e.Kind, e.Op, e.Symbol, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s %s: %s", e.Kind, e.Op, e.Symbol, e.Message)
}

func (e *TradeError) Unwrap() error {
	return e.Err
}

func validationError(op, symbol, message string) *TradeError {
	return &TradeError{Kind: KindValidation, Op: op, Symbol: symbol, Message: message}
}

func notFoundError(op, symbol, message string) *TradeError {
	return &TradeError{Kind: KindNotFound, Op: op, Symbol: symbol, Message: message}
}

func conflictError(op, symbol, message string) *TradeError {
	return &TradeError{Kind: KindConflict, Op: op, Symbol: symbol, Message: message}
}

func gatewayError(op, symbol string, err error) *TradeError {
	return &TradeError{Kind: KindGateway, Op: op, Symbol: symbol, Message: "gateway call failed", Err: err}
}

// KindOf returns the kind of err, or KindGateway for untyped errors, since
// anything unclassified came from an external call.
func KindOf(err error) ErrorKind {
	var tradeErr *TradeError
	if errors.As(err, &tradeErr) {
		return tradeErr.Kind
	}
	return KindGateway
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
