package locindex

import "github.com/rotisserie/eris"

var (
	// ErrNotFound is returned by lookups for names absent from a built index.
	ErrNotFound = eris.New("locindex: location not recognized")

	// ErrNotBuilt is returned when the index has no successful build to
	// answer from.
	ErrNotBuilt = eris.New("locindex: index not built")
)

// BuildError reports a failed build. It matches both ErrNotBuilt and the
// underlying cause with errors.Is.
type BuildError struct {
	Err error
}

func (e *BuildError) Error() string {
	return "locindex: build failed: " + e.Err.Error()
}

// Unwrap returns ErrNotBuilt and the cause.
func (e *BuildError) Unwrap() []error {
	return []error{ErrNotBuilt, e.Err}
}
