package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"converter-kit/internal/common"
)

// Diagnostics is the report of one analyzer or generator run, split by
// severity. The zero value is an empty report.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is one note about a type or method that did not make it into a
// dispatch table unchanged.
type Diagnostic struct {
	Severity DiagnosticSeverity

	// Code is a stable snake_case tag such as "generic_type" or "no_methods".
	Code string

	Message string

	// Type is the qualified type name, e.g. "example.com/shop.Counter".
	Type string

	// Member is the method name, empty for type-level notes.
	Member string
}

// DiagnosticSeverity orders diagnostics. Only errors stop generation.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, typeName, member string) {
	entry := Diagnostic{Severity: sev, Code: code, Message: message, Type: typeName, Member: member}

	switch sev {
	case DiagnosticError:
		d.Errors = append(d.Errors, entry)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, entry)
	default:
		d.Infos = append(d.Infos, entry)
	}
}

// AddError records a problem that makes the run fail, such as a requested
// type missing from the loaded packages.
func (d *Diagnostics) AddError(code, message, typeName, member string) {
	d.add(DiagnosticError, code, message, typeName, member)
}

// AddWarning records a type or method left out of the generated tables.
func (d *Diagnostics) AddWarning(code, message, typeName, member string) {
	d.add(DiagnosticWarning, code, message, typeName, member)
}

// AddInfo records something skipped while loading that nobody asked for yet.
func (d *Diagnostics) AddInfo(code, message, typeName, member string) {
	d.add(DiagnosticInfo, code, message, typeName, member)
}

// Merge appends the entries of other.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

func (d Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

func (d Diagnostics) IsValid() bool {
	return !d.HasErrors()
}

// All returns errors first, then warnings, then infos.
func (d Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, len(d.Errors)+len(d.Warnings)+len(d.Infos))
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)

	return append(all, d.Infos...)
}

// Error joins the error entries with "; ", or returns nil when there are none.
func (d Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// String renders "[Type] Member: [code] message", dropping empty parts.
func (d Diagnostic) String() string {
	var where []string
	if d.Type != "" {
		where = append(where, "["+d.Type+"]")
	}

	if d.Member != "" {
		where = append(where, d.Member)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(where) == 0 {
		return msg
	}

	return strings.Join(where, " ") + ": " + msg
}
