package mapping

import "errors"

var (
	// ErrIndexRange indicates a mapping entry references a source row
	// outside the input's row range.
	ErrIndexRange = errors.New("mapping: source index out of range")

	// ErrDuplicateName indicates two set entries share a name.
	ErrDuplicateName = errors.New("mapping: name already registered")
)
