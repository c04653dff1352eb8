package errors

import "errors"

var (
	ErrInvalidRequest          = errors.New("invalid request")
	ErrUserNotFound            = errors.New("user not found")
	ErrCrossBankRelationship   = errors.New("superior and subordinate must belong to the same bank")
	ErrSuperiorRoleMismatch    = errors.New("superior does not hold the required role")
	ErrSubordinateRoleMismatch = errors.New("subordinate role conflicts with the relationship type")
	ErrInvalidRelationType     = errors.New("unknown relationship type")
	ErrRelationshipExists      = errors.New("relationship already exists")
	ErrRelationshipNotFound    = errors.New("relationship not found")
	ErrBankUnavailable         = errors.New("bank unavailable")
)
