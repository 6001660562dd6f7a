package tree

import "errors"

var (
	ErrMaxDepth         = errors.New("maximum nesting depth exceeded")
	ErrIndexOutOfRange  = errors.New("array index out of range")
	ErrOutOfBounds      = errors.New("leaf range out of buffer bounds")
	ErrDocumentTooLarge = errors.New("document too large")
	ErrNotLeaf          = errors.New("not a leaf")
	ErrNoNode           = errors.New("no node at address")
)
