// Package report accumulates rule violations and renders the final report.
//
// Accumulation and reporting are separate phases: checkers only ever call Add
// on a Collector they are handed, and the command layer calls Write once at
// the end of the run.
package report

import "fmt"

// maxExitCode is the largest status a process can return without wrapping.
const maxExitCode = 255

// Collector is an ordered, append-only list of violation messages.
// The zero value is ready to use.
type Collector struct {
	errors []string
}

// NewCollector returns an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a violation.
func (c *Collector) Add(msg string) {
	c.errors = append(c.errors, msg)
}

// Addf records a formatted violation.
func (c *Collector) Addf(format string, args ...any) {
	c.Add(fmt.Sprintf(format, args...))
}

// Extend records every message in msgs, in order.
func (c *Collector) Extend(msgs []string) {
	c.errors = append(c.errors, msgs...)
}

// Len returns the number of recorded violations.
func (c *Collector) Len() int {
	return len(c.errors)
}

// Errors returns a copy of the recorded violations.
func (c *Collector) Errors() []string {
	out := make([]string, len(c.errors))
	copy(out, c.errors)
	return out
}

// ExitCode is the violation count, clamped to 255 so that large counts can
// never wrap around to a successful status.
func (c *Collector) ExitCode() int {
	if c.Len() > maxExitCode {
		return maxExitCode
	}
	return c.Len()
}
