// Package diag implements diagnostics as values, never exceptions, per
// spec §7: every stage accumulates Diagnostics and returns a best-effort
// partial result alongside them.
package diag

import (
	"fmt"

	"axonscript/internal/token"
)

// Kind tags which pipeline stage produced a Diagnostic.
type Kind int

const (
	Syntax Kind = iota
	Semantic
	Type
	Codegen
	Linker
)

func (k Kind) String() string {
	switch k {
	case Syntax:
		return "Syntax"
	case Semantic:
		return "Semantic"
	case Type:
		return "Type"
	case Codegen:
		return "Codegen"
	case Linker:
		return "Linker"
	default:
		return "Unknown"
	}
}

// Severity distinguishes diagnostics that block forward pipeline progress
// from those that are merely reported.
type Severity int

const (
	Error Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "error"
}

// Diagnostic is a single reported problem, carrying everything needed to
// render it against source text (spec §4.1, §7).
type Diagnostic struct {
	Kind       Kind
	Severity   Severity
	Code       string // stable string, e.g. "ERR-SEM-550"
	Message    string
	Span       token.Span
	Suggestion string // optional; empty if none
}

// Error implements the error interface so a Diagnostic can be wrapped with
// fmt.Errorf("%w", ...) and compared with errors.As, matching the
// teacher's plain error-return-value discipline.
func (d Diagnostic) Error() string {
	if d.Suggestion != "" {
		return fmt.Sprintf("%s [%s]: %s (suggestion: %s)", d.Code, d.Severity, d.Message, d.Suggestion)
	}
	return fmt.Sprintf("%s [%s]: %s", d.Code, d.Severity, d.Message)
}

// HasErrors reports whether any Diagnostic in ds has Error severity. The
// driver uses this to decide whether to suppress forward progress across a
// stage boundary (spec §7).
func HasErrors(ds []Diagnostic) bool {
	for _, d := range ds {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// New constructs an Error-severity Diagnostic.
func New(kind Kind, code, message string, span token.Span) Diagnostic {
	return Diagnostic{Kind: kind, Severity: Error, Code: code, Message: message, Span: span}
}

// NewWarning constructs a Warning-severity Diagnostic.
func NewWarning(kind Kind, code, message string, span token.Span) Diagnostic {
	return Diagnostic{Kind: kind, Severity: Warning, Code: code, Message: message, Span: span}
}
