package errors

import "errors"

var (
	ErrInvalidRequest   = errors.New("invalid request")
	ErrInvalidOperation = errors.New("operation must be set, add or deduct")
	ErrInvalidCurrency  = errors.New("unsupported currency")
	ErrInvalidAmount    = errors.New("amount is not a valid decimal")
	ErrBankNotFound     = errors.New("bank not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrBankUnavailable  = errors.New("bank unavailable")
)
