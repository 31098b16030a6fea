package diag

import (
	"fmt"
	"strings"

	"minicc/internal/source"
)

// FormatGolden renders diagnostics one per line in a stable format suitable
// for snapshot tests and machine consumption:
//
//	<severity> <Kind> <path>:<line>:<col> <message>
//
// Order is the bag's detection order; notes follow their diagnostic when
// includeNotes is set.
func FormatGolden(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil || len(diags) == 0 {
		return ""
	}

	var b strings.Builder
	first := true
	for i := range diags {
		d := &diags[i]
		writeGoldenLine(&b, &first, severityLabel(d.Severity), d.Kind, d.Primary, d.Message, fs)
		if !includeNotes {
			continue
		}
		for _, note := range d.Notes {
			writeGoldenLine(&b, &first, "note", d.Kind, note.Span, note.Msg, fs)
		}
	}
	return b.String()
}

func writeGoldenLine(b *strings.Builder, first *bool, sev string, kind Kind, span source.Span, msg string, fs *source.FileSet) {
	if !*first {
		b.WriteByte('\n')
	}
	*first = false
	path, line, col := resolveSpan(fs, span)
	fmt.Fprintf(b, "%s %s %s:%d:%d %s", sev, kind.ID(), path, line, col, sanitizeMessage(msg))
}

func resolveSpan(fs *source.FileSet, span source.Span) (path string, line, col uint32) {
	defer func() {
		if recover() != nil {
			path, line, col = "<unknown>", 0, 0
		}
	}()
	file := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	return file.DisplayPath(fs.BaseDir()), start.Line, start.Col
}

func severityLabel(sev Severity) string {
	switch sev {
	case SevError:
		return "error"
	case SevWarning:
		return "warning"
	default:
		return "info"
	}
}

func sanitizeMessage(msg string) string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	msg = strings.ReplaceAll(msg, "\r", "\n")
	msg = strings.ReplaceAll(msg, "\n", " ")
	return strings.TrimSpace(msg)
}
