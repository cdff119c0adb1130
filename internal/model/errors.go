package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when inference is requested before Load.
	ErrNotLoaded = errors.New("model not loaded")
	// ErrInvalidInputShape matches a *ShapeError on the model input.
	ErrInvalidInputShape = errors.New("invalid input shape")
	// ErrInvalidOutputShape matches a *ShapeError on the model output.
	ErrInvalidOutputShape = errors.New("invalid output shape")
	// ErrDegenerateSoftmax is returned when the exponentials of the logits
	// sum to zero.
	ErrDegenerateSoftmax = errors.New("degenerate softmax: exponentials sum to zero")
)

// ShapeError reports a tensor whose length does not match the model.
type ShapeError struct {
	Kind     error
	Expected int
	Actual   int
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%v: expected %d values, got %d", e.Kind, e.Expected, e.Actual)
}

func (e *ShapeError) Is(target error) bool {
	return target == e.Kind
}

func checkLen(kind error, expected, actual int) error {
	if expected != actual {
		return &ShapeError{Kind: kind, Expected: expected, Actual: actual}
	}
	return nil
}
