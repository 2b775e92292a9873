package contract

import "fmt"

// Diag carries non-fatal warnings produced while loading or compiling a
// contract document.
type Diag interface {
	HasWarnings() bool
	Warnings() []string
}

// Recorder is the built-in Diag implementation. The zero value is ready to
// use.
type Recorder struct{ ws []string }

func (d *Recorder) HasWarnings() bool  { return len(d.ws) > 0 }
func (d *Recorder) Warnings() []string { return append([]string(nil), d.ws...) }

// Warnf records one formatted warning.
func (d *Recorder) Warnf(f string, a ...any) { d.ws = append(d.ws, fmt.Sprintf(f, a...)) }
