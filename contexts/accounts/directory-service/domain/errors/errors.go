package errors

import "errors"

var (
	ErrInvalidListQuery = errors.New("page and perPage must be at least 1")
	ErrInvalidKYCStatus = errors.New("invalid kyc status")
	ErrBankNotFound     = errors.New("bank not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrBankUnavailable  = errors.New("bank unavailable")
)
