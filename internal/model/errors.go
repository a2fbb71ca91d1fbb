package model

import (
	"errors"
	"fmt"
)

var ErrValidation = errors.New("validation failed")

// ValidationError blocks an action before any state changes.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Msg)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
