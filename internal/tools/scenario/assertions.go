package scenario

import (
	"errors"
	"fmt"
	"log"
)

// ErrAssertion marks a failed expectation in strict mode.
var ErrAssertion = errors.New("assertion failed")

// AssertionMode controls how failed expectations are reported.
type AssertionMode int

const (
	// AssertionStrict stops the scenario on the first failed expectation.
	AssertionStrict AssertionMode = iota
	// AssertionLogOnly logs failed expectations and keeps running.
	AssertionLogOnly
)

// Assertions reports failures according to Mode.
type Assertions struct {
	Mode   AssertionMode
	Logger *log.Logger
}

// Failf returns a non-assertion error. Failures unrelated to expectations
// always stop the scenario.
func (a Assertions) Failf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// Assertf reports a failed expectation. In log-only mode it logs and
// returns nil.
func (a Assertions) Assertf(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	if a.Mode == AssertionLogOnly {
		if a.Logger != nil {
			a.Logger.Printf("assertion: %s", msg)
		}
		return nil
	}
	return fmt.Errorf("%w: %s", ErrAssertion, msg)
}
