package exiftool

import "fmt"

// NotFoundError is returned when the exiftool executable cannot be probed
// at the configured path. Fatal to engine construction.
type NotFoundError struct {
	Path  string
	cause error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("cannot find exiftool at path %q", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.cause
}

// UnsupportedFeatureError is returned when the probed exiftool version is
// below what the selected execution strategy requires. Fatal to engine
// construction; callers may fall back to a one-shot engine.
type UnsupportedFeatureError struct {
	Path    string
	Version Version
	Minimum Version
}

func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf(
		"exiftool %s at %q does not support this feature (requires %s or later)",
		e.Version, e.Path, e.Minimum,
	)
}

// TransportError is returned when the pipe to a worker breaks mid-request,
// including when the worker dies before echoing the response sentinel. The
// failed call is not retried; the owning strategy respawns its worker on
// the next call.
type TransportError struct {
	Op    string
	cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("exiftool transport failure during %s: %v", e.Op, e.cause)
}

func (e *TransportError) Unwrap() error {
	return e.cause
}
