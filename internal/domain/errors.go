package domain

import "errors"

var (
	// ErrInvalidRequestKind marks an envelope with an unsupported request
	// type. Integration error, surfaced as a 400.
	ErrInvalidRequestKind = errors.New("invalid request kind")

	// ErrUnknownIntent means no canonical example exists for the
	// (language, device, name) triple. Surfaced as a 404.
	ErrUnknownIntent = errors.New("unknown intent")

	// ErrUnsupportedSlotType marks a schema mismatch between a stored
	// example and the resolver. Deployment bug, surfaced as a 500.
	ErrUnsupportedSlotType = errors.New("unsupported slot type")
)
