package device

import (
	"errors"
	"fmt"
)

// ErrResourceExhausted matches every *ExhaustionError.
var ErrResourceExhausted = errors.New("resource exhausted")

// ExhaustionError reports a device resource that cannot satisfy a request:
// the surface pool is full, or a textbox size exceeds the limit.
type ExhaustionError struct {
	Resource string // "tile pool", "textbox"
	Limit    int
	Detail   string
}

func (e *ExhaustionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("device: %s exhausted (limit %d): %s", e.Resource, e.Limit, e.Detail)
	}
	return fmt.Sprintf("device: %s exhausted (limit %d)", e.Resource, e.Limit)
}

// Is makes errors.Is(err, ErrResourceExhausted) true.
func (e *ExhaustionError) Is(target error) bool {
	return target == ErrResourceExhausted
}
