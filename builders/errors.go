package builders

import (
	"slices"

	"github.com/pingcap/errors"
)

// Error instances.
var (
	// ErrWrongArguments is raised when a call's argument count violates the
	// function's contract. It carries the offending function name.
	ErrWrongArguments = errors.Normalize("Incorrect arguments to window function %s",
		errors.RFCCodeText("wincall:builders:WrongArguments"), errors.MySQLErrorCode(1210))
	// ErrDuplicateFunction is raised when a table receives the same name twice.
	ErrDuplicateFunction = errors.Normalize("window function %s registered twice in the %s table",
		errors.RFCCodeText("wincall:builders:DuplicateFunction"))
	// ErrInvalidEntry is raised for an entry with an empty name or no builder.
	ErrInvalidEntry = errors.Normalize("invalid window function entry %q in the %s table",
		errors.RFCCodeText("wincall:builders:InvalidEntry"))
)

// Reporter receives diagnostics raised while building nodes. It plays the
// role of the session's error sink; a nil Reporter discards reports.
type Reporter interface {
	Report(err error)
}

// Diagnostics is a Reporter that records every report in order. It is meant
// for a single session and is not safe for concurrent use. A nil
// *Diagnostics discards reports and reads as empty.
type Diagnostics struct {
	errs []error
}

// Report implements Reporter.
func (d *Diagnostics) Report(err error) {
	if d == nil {
		return
	}
	d.errs = append(d.errs, err)
}

// Errors returns a copy of the recorded reports.
func (d *Diagnostics) Errors() []error {
	if d == nil {
		return nil
	}
	return slices.Clone(d.errs)
}

// Len returns the number of recorded reports.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.errs)
}

// Last returns the most recent report, or nil.
func (d *Diagnostics) Last() error {
	if d.Len() == 0 {
		return nil
	}
	return d.errs[len(d.errs)-1]
}

// Reset drops all recorded reports.
func (d *Diagnostics) Reset() {
	if d != nil {
		d.errs = nil
	}
}

func report(r Reporter, err error) {
	if r != nil {
		r.Report(err)
	}
}

func wrongArguments(name string) error {
	return ErrWrongArguments.GenWithStackByArgs(name)
}
