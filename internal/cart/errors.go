package cart

import (
	"errors"
	"fmt"
)

type Code int

const (
	CodeInvalidQuantity Code = iota + 1
	CodeNotFound
	CodeInvalidInput
)

// Error message constants for the cart domain.
const (
	ErrMsgQuantityPositive  = "quantity must be a positive integer"
	ErrMsgQuantityTooLarge  = "quantity cannot exceed 999 per line"
	ErrMsgProductIDRequired = "product id is required"
	ErrMsgPriceNegative     = "product price cannot be negative"
	ErrMsgProductNotFound   = "product not found"
	ErrMsgInvalidEmail      = "email is malformed"
)

func (c Code) String() string {
	switch c {
	case CodeInvalidQuantity:
		return "INVALID_QUANTITY"
	case CodeNotFound:
		return "NOT_FOUND"
	case CodeInvalidInput:
		return "INVALID_INPUT"
	default:
		return "UNKNOWN"
	}
}

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewInvalidQuantity(message string) *Error {
	return &Error{Code: CodeInvalidQuantity, Message: message}
}

func NewInvalidQuantityf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidQuantity, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidInput(message string) *Error {
	return &Error{Code: CodeInvalidInput, Message: message}
}

func NewInvalidInputf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundf(format string, args ...interface{}) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// CodeOf returns the code carried by err, or 0 when err is not a cart error.
func CodeOf(err error) Code {
	var cartErr *Error
	if errors.As(err, &cartErr) {
		return cartErr.Code
	}
	return 0
}
