// Package sprint holds the result of a sprint: one transaction against a
// target, possibly made of several request/response steps.
package sprint

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"
)

// Transaction is one side of an HTTP exchange.
// Requests use Method and URL; responses use Status and Message.
type Transaction struct {
	Line    string  `json:"line,omitempty"`
	Method  string  `json:"method,omitempty"`
	URL     string  `json:"url,omitempty"`
	Content string  `json:"content"`
	Status  int     `json:"status,omitempty"`
	Message string  `json:"message,omitempty"`
	Headers Headers `json:"headers"`
}

// StatusLine returns the first line of the raw header block.
func (t *Transaction) StatusLine() string {
	switch {
	case t.Line != "":
		return t.Line
	case t.Status != 0:
		return fmt.Sprintf("%d %s", t.Status, t.Message)
	default:
		return fmt.Sprintf("%s %s", t.Method, t.URL)
	}
}

// Step is one request/response pair of a sprint.
type Step struct {
	Connect  time.Duration
	Duration time.Duration
	Request  Transaction
	Response Transaction
}

// Schema tells which shape of result the engine produced.
type Schema int

const (
	// SchemaLegacy results carry no total duration.
	SchemaLegacy Schema = iota
	// SchemaTimed results carry the total duration of the sprint.
	SchemaTimed
)

func (s Schema) String() string {
	switch s {
	case SchemaLegacy:
		return "legacy"
	case SchemaTimed:
		return "timed"
	}
	return "<Unknown>"
}

// Result is the outcome of a sprint.
type Result struct {
	Region   string
	Schema   Schema
	Duration time.Duration
	Steps    []Step
}

// TotalDuration returns the duration of the whole sprint.
// The second value is false for legacy results.
func (r *Result) TotalDuration() (time.Duration, bool) {
	if r.Schema != SchemaTimed {
		return 0, false
	}
	return r.Duration, true
}

// Validate checks the invariants every printable result must hold.
func (r *Result) Validate() error {
	if len(r.Steps) == 0 {
		return errors.New("sprint result has no steps")
	}
	if r.Duration < 0 {
		return errors.Errorf("negative sprint duration: %v", r.Duration)
	}
	for i, step := range r.Steps {
		if step.Connect < 0 || step.Duration < 0 {
			return errors.Errorf("negative duration in step %d", i+1)
		}
	}
	return nil
}

// Milliseconds converts d to whole milliseconds, rounding to nearest.
func Milliseconds(d time.Duration) int64 {
	return d.Round(time.Millisecond).Milliseconds()
}

// Seconds converts a duration expressed in float seconds.
// Use ParseSeconds for values that may not fit in a time.Duration.
func Seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// maxSeconds is the longest time.Duration, in seconds.
const maxSeconds = float64(math.MaxInt64) / float64(time.Second)

// ParseSeconds is Seconds for untrusted input.
func ParseSeconds(s float64) (time.Duration, error) {
	if math.IsNaN(s) || math.Abs(s) >= maxSeconds {
		return 0, errors.Errorf("duration out of range: %v", s)
	}
	return Seconds(s), nil
}
