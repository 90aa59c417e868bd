package matching

import "errors"

var (
	// ErrSubjectNotFound means the fighter id a ranking was requested for
	// does not resolve to a record. Fatal to that call.
	ErrSubjectNotFound = errors.New("subject fighter not found")

	// ErrInvalidCriteria marks caller-supplied criteria rejected at the
	// pipeline boundary, before any fetch.
	ErrInvalidCriteria = errors.New("invalid matching criteria")

	// ErrUnknownKind marks an unrecognized ranking target kind.
	ErrUnknownKind = errors.New("unknown target kind")
)
