package mapping

import (
	"errors"

	"github.com/signadot/mpmap/mpath"
	"github.com/signadot/mpmap/wire"
)

var (
	ErrInvalidArgument      = errors.New("invalid argument")
	ErrMalformedDocument    = wire.ErrMalformedDocument
	ErrNoMatchFound         = errors.New("no match found")
	ErrNonObjectSource      = errors.New("non object source")
	ErrNonObjectTarget      = errors.New("non object target")
	ErrNonObjectResult      = errors.New("non object result")
	ErrProhibitedExpression = errors.New("prohibited expression")
	ErrRedundantMapping     = errors.New("redundant mapping")
)

// Error is an error with a fixed message, matching Err with errors.Is.
type Error struct {
	Err error
	Msg string
}

func (e *Error) Error() string { return e.Msg }
func (e *Error) Unwrap() error { return e.Err }

var (
	errSourceNil = &Error{
		Err: ErrInvalidArgument,
		Msg: "Source document must not be null!",
	}
	errTargetNil = &Error{
		Err: ErrInvalidArgument,
		Msg: "Target document must not be null!",
	}
	errNoMappings = &Error{
		Err: ErrInvalidArgument,
		Msg: "Mapping must be neither null nor empty!",
	}
	errNonObjectSource = &Error{
		Err: ErrNonObjectSource,
		Msg: "Can't extract from source document, since it is not a map (json object).",
	}
	errNonObjectTarget = &Error{
		Err: ErrNonObjectTarget,
		Msg: "Can't merge into the target document, since it is not a map (json object).",
	}
	errNonObjectResult = &Error{
		Err: ErrNonObjectResult,
		Msg: "Processing failed, since mapping will result in a non map object (json object).",
	}
)

func noMatch(q *mpath.Query) error {
	return &Error{Err: ErrNoMatchFound, Msg: "No data found for query " + q.String() + "."}
}
