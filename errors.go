package shallowshadow

import "errors"

var (
	// ErrInvalidDepth is returned when the circuit depth is below one.
	ErrInvalidDepth = errors.New("depth must be >= 1")

	// ErrInvalidEta is returned when the confidence-bound rate is not positive.
	ErrInvalidEta = errors.New("eta must be positive")

	// ErrInvalidBudget is returned when the measurement budget is not positive.
	ErrInvalidBudget = errors.New("measurement budget must be positive")

	// ErrInvalidParallelism is returned when the worker count is not positive.
	ErrInvalidParallelism = errors.New("parallelism must be positive")

	// ErrSessionConsumed is returned when Run is called a second time on
	// the same session.
	ErrSessionConsumed = errors.New("session has already been run")

	// ErrQubitMismatch is returned when an observable does not match the
	// session's qubit count.
	ErrQubitMismatch = errors.New("observable length does not match session qubit count")
)
