package exchange

import "fmt"

// StatusError reports a step that did not answer the expected status.
type StatusError struct {
	Step     int
	Expected int
	Actual   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("step %d: expected status %d, got %d", e.Step, e.Expected, e.Actual)
}
