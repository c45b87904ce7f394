package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"hdrnorm/internal/common"
)

// Diagnostic codes emitted by the normalization steps.
const (
	CodeFlattenOverwrite = "FLATTEN_OVERWRITE"
	CodeFlattenEmpty     = "FLATTEN_EMPTY"
	CodeShortenOverwrite = "SHORTEN_OVERWRITE"
	CodeShortenSuffix    = "SHORTEN_SUFFIX"
)

// Diagnostics holds all diagnostic information from one transformation.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a unique identifier for this type of diagnostic.
	Code string
	// Message is the human-readable description.
	Message string
	// Key is the header key this relates to (if any).
	Key string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, key, format string, args ...any) {
	d.Errors = append(d.Errors, newDiagnostic(SeverityError, code, key, format, args...))
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, key, format string, args ...any) {
	d.Warnings = append(d.Warnings, newDiagnostic(SeverityWarning, code, key, format, args...))
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, key, format string, args ...any) {
	d.Infos = append(d.Infos, newDiagnostic(SeverityInfo, code, key, format, args...))
}

func newDiagnostic(sev Severity, code, key, format string, args ...any) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  fmt.Sprintf(format, args...),
		Key:      key,
	}
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns every diagnostic, errors first.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Codes returns the codes of all warnings, in order. Handy in tests.
func (d *Diagnostics) Codes() []string {
	codes := make([]string, 0, len(d.Warnings))
	for _, w := range d.Warnings {
		codes = append(codes, w.Code)
	}

	return codes
}

// Error returns a combined error from all error diagnostics, or nil if valid.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if d.Key != "" {
		return d.Key + ": " + msg
	}

	return msg
}
