// Package errorspkg provides common app errors.
package errorspkg

import "errors"

// ErrInternal indicates an internal failure whose details were logged but not returned.
var ErrInternal = errors.New("internal")
