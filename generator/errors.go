package generator

import "errors"

var (
	// ErrSchema is returned when the metadata breaks an assumption the
	// translation depends on, such as a default for a parameter that does
	// not exist. It means the input is corrupt, not that a type is
	// unsupported.
	ErrSchema = errors.New("generator: metadata schema violation")

	// ErrUnconvertibleDefault is returned in strict mode when at least one
	// default argument could not be converted.
	ErrUnconvertibleDefault = errors.New("generator: unconvertible default value")
)
