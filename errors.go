package strcore

import (
	"errors"
	"fmt"
)

var ErrIndexOutOfRange = errors.New("strcore: index out of range")

// IndexError is the panic value for any out-of-range access. It unwraps
// to ErrIndexOutOfRange.
type IndexError struct {
	Op    string
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("strcore: %s: index %d out of range [0:%d]", e.Op, e.Index, e.Len)
}

func (e *IndexError) Unwrap() error { return ErrIndexOutOfRange }
