// Package diagfmt renders diagnostics, token streams, and syntax trees
// for the CLI. The golden single-line format lives in the diag package;
// this one is for humans.
package diagfmt

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"minicc/internal/diag"
	"minicc/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	noteColor    = color.New(color.FgCyan)
	gutterColor  = color.New(color.FgHiBlack)
)

// Pretty renders every diagnostic in the bag in a human-readable form.
// Each diagnostic prints as
//
//	<path>:<line>:<col>: <severity> <Kind>: <message>
//
// followed by the offending source line with a ^~~~ underline, then the
// notes in the same shape when opts.ShowNotes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, opts, d.Primary, severityTag(d.Severity, opts.Color), d.Kind.ID(), d.Message)
		writeExcerpt(w, fs, opts, d.Primary, d.Severity)
		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			tag := "note"
			if opts.Color {
				tag = noteColor.Sprint(tag)
			}
			writeHeading(w, fs, opts, n.Span, tag, "", n.Msg)
			writeExcerpt(w, fs, opts, n.Span, diag.SevInfo)
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, opts PrettyOpts, span source.Span, tag, kindID, msg string) {
	start, _ := fs.Resolve(span)
	fmt.Fprintf(w, "%s:%d:%d: %s", displayPath(fs, span.File, opts.PathMode), start.Line, start.Col, tag)
	if kindID != "" {
		fmt.Fprintf(w, " %s", kindID)
	}
	fmt.Fprintf(w, ": %s\n", msg)
}

// writeExcerpt prints the first line the span touches and underlines the
// covered columns. Tabs render as single spaces so the caret lines up.
func writeExcerpt(w io.Writer, fs *source.FileSet, opts PrettyOpts, span source.Span, sev diag.Severity) {
	start, end := fs.Resolve(span)
	line := fs.Get(span.File).Line(start.Line)
	if line == "" {
		return
	}
	line = strings.ReplaceAll(line, "\t", " ")
	if opts.Width > 0 {
		line = runewidth.Truncate(line, opts.Width, "...")
	}

	runes := []rune(line)
	startCol := int(start.Col) - 1
	if startCol > len(runes) {
		startCol = len(runes)
	}
	endCol := len(runes)
	if end.Line == start.Line && int(end.Col)-1 < endCol {
		endCol = int(end.Col) - 1
	}

	pad := runewidth.StringWidth(string(runes[:startCol]))
	width := runewidth.StringWidth(string(runes[startCol:endCol]))
	if width < 1 {
		width = 1
	}

	marker := "^" + strings.Repeat("~", width-1)
	gutter := "    "
	if opts.Color {
		marker = severityColor(sev).Sprint(marker)
		fmt.Fprintf(w, "%s%s\n", gutter, gutterColor.Sprint(line))
	} else {
		fmt.Fprintf(w, "%s%s\n", gutter, line)
	}
	fmt.Fprintf(w, "%s%s%s\n", gutter, strings.Repeat(" ", pad), marker)
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func severityTag(sev diag.Severity, colored bool) string {
	var tag string
	switch sev {
	case diag.SevError:
		tag = "error"
	case diag.SevWarning:
		tag = "warning"
	default:
		tag = "info"
	}
	if colored {
		return severityColor(sev).Sprint(tag)
	}
	return tag
}

func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	f := fs.Get(id)
	switch mode {
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	default:
		return f.DisplayPath(fs.BaseDir())
	}
}
