package rag

import (
	"errors"
	"fmt"
)

// ErrServiceFailure marks a failed call to the text generator or the knowledge store.
// Callers surface it as a generic internal error; it is never retried.
var ErrServiceFailure = errors.New("rag service failure")

func serviceFailure(step string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrServiceFailure, step, err)
}
