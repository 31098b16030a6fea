package diag

import (
	"minicc/internal/source"
)

// Note attaches a secondary location to a diagnostic, e.g. the previous
// declaration in a redefinition error.
type Note struct {
	Span source.Span
	Msg  string
}

type Diagnostic struct {
	Severity Severity
	Kind     Kind
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, kind Kind, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Kind:     kind,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(kind Kind, primary source.Span, msg string) Diagnostic {
	return New(SevError, kind, primary, msg)
}

func NewWarning(kind Kind, primary source.Span, msg string) Diagnostic {
	return New(SevWarning, kind, primary, msg)
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
