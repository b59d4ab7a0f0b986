package core

import "github.com/mdobak/go-xerrors"

// Typed failures surfaced by the gateway. Anything else reaching a handler is
// an underlying storage failure.
var (
	ErrNotFound          = xerrors.Message("no record found")
	ErrInvalidArgument   = xerrors.Message("invalid argument")
	ErrDuplicateUsername = xerrors.Message("duplicate username")
	ErrDuplicateEmail    = xerrors.Message("duplicate email")
)
