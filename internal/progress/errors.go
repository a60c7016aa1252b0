package progress

import "fmt"

// SaveError indicates the progress document could not be written. The
// in-memory session is unaffected.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save progress: %v", e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// LoadError indicates a persisted document was present but unusable.
// Stage names the step that failed: read, parse, schema or decode.
type LoadError struct {
	Stage string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load progress (%s): %v", e.Stage, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
