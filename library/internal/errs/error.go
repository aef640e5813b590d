package errs

import (
	"errors"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrIDExists   = errors.New("a new library cannot already have an ID")
	ErrInvalidID  = errors.New("id is invalid")
	ErrConstraint = errors.New("constraint violation")
)

// Alert keys sent in the failure alert header.
const (
	KeyIDExists   = "idexists"
	KeyValidation = "validation"
)

type ValidationErrorResponse struct {
	Message string `json:"message"`
	Errors  struct {
		AdditionalProperties string `json:"additionalProperties"`
	} `json:"errors"`
}
