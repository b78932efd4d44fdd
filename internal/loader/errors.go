package loader

import (
	"errors"
	"fmt"
)

// ErrSourceRead is matched by every SourceReadError.
var ErrSourceRead = errors.New("cannot read description source")

// SourceReadError reports a description source that could not be read or parsed.
type SourceReadError struct {
	File    string
	Line    int
	Message string
	Err     error
}

func (e *SourceReadError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.File != "" {
		if e.Line > 0 {
			return fmt.Sprintf("%s:%d: %s", e.File, e.Line, msg)
		}
		return fmt.Sprintf("%s: %s", e.File, msg)
	}
	return msg
}

func (e *SourceReadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrSourceRead) succeed.
func (e *SourceReadError) Is(target error) bool {
	return target == ErrSourceRead
}
