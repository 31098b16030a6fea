package lexer

import (
	"minicc/internal/diag"
	"minicc/internal/source"
)

// Options configure a Lexer. A nil Reporter drops diagnostics but the
// lexer still produces tokens; it never stops on malformed input.
type Options struct {
	Reporter diag.Reporter
}

func (lx *Lexer) errLex(kind diag.Kind, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, diag.SevError, sp, msg, nil)
	}
}

func (lx *Lexer) warnLex(kind diag.Kind, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, diag.SevWarning, sp, msg, nil)
	}
}
