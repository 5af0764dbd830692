// Package services holds what the services share.
package services

import "errors"

// ErrTimeout is returned when a read-path lookup exceeded its deadline.
var ErrTimeout = errors.New("lookup timed out")
