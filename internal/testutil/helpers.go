package testutil

import (
	"errors"
)

const DatabaseError = "database error occurred"

// OperationResult is the canned outcome of a mocked call.
type OperationResult[T any] struct {
	Data T
	Err  error
}

// Return a generic typed error return for a Database call.
func GetMockRepoError[T any]() *OperationResult[T] {
	return NewErrorResult[T](errors.New(DatabaseError))
}

// NewErrorResult wraps an error with the zero value of T.
func NewErrorResult[T any](err error) *OperationResult[T] {
	return &OperationResult[T]{
		Data: *new(T),
		Err:  err,
	}
}

// Wrap a generic Data into a OperationResult struct.
func NewSuccessResult[T any](data T) *OperationResult[T] {
	return &OperationResult[T]{
		Data: data,
		Err:  nil,
	}
}
