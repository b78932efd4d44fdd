package bemjson

import (
	"errors"
	"fmt"
)

// ErrMalformedDescription is matched by every MalformedDescriptionError.
var ErrMalformedDescription = errors.New("malformed description")

// MalformedDescriptionError reports a record whose block field cannot be
// used as a component name.
type MalformedDescriptionError struct {
	// Path locates the offending record, e.g. "$[0].content[2]".
	Path  string
	Value any
	Msg   string
}

func (e *MalformedDescriptionError) Error() string {
	return fmt.Sprintf("malformed description at %s: %s (got %T %v)", e.Path, e.Msg, e.Value, e.Value)
}

// Is makes errors.Is(err, ErrMalformedDescription) succeed.
func (e *MalformedDescriptionError) Is(target error) bool {
	return target == ErrMalformedDescription
}
