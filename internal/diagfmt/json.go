package diagfmt

import (
	"encoding/json"
	"io"

	"minicc/internal/diag"
	"minicc/internal/source"
)

// DiagOutput is the JSON shape of one diagnostic.
type DiagOutput struct {
	Severity string       `json:"severity"`
	Kind     string       `json:"kind"`
	Message  string       `json:"message"`
	Path     string       `json:"path"`
	Line     uint32       `json:"line,omitempty"`
	Col      uint32       `json:"col,omitempty"`
	Notes    []NoteOutput `json:"notes,omitempty"`
}

// NoteOutput is the JSON shape of one attached note.
type NoteOutput struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Line    uint32 `json:"line,omitempty"`
	Col     uint32 `json:"col,omitempty"`
}

// FormatJSON writes the bag as a JSON array, in detection order.
func FormatJSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	items := bag.Items()
	if opts.Max > 0 && len(items) > opts.Max {
		items = items[:opts.Max]
	}

	output := make([]DiagOutput, 0, len(items))
	for _, d := range items {
		out := DiagOutput{
			Severity: d.Severity.String(),
			Kind:     d.Kind.ID(),
			Message:  d.Message,
			Path:     fs.Get(d.Primary.File).DisplayPath(fs.BaseDir()),
		}
		if opts.IncludePositions {
			start, _ := fs.Resolve(d.Primary)
			out.Line, out.Col = start.Line, start.Col
		}
		if opts.IncludeNotes {
			for _, n := range d.Notes {
				no := NoteOutput{
					Message: n.Msg,
					Path:    fs.Get(n.Span.File).DisplayPath(fs.BaseDir()),
				}
				if opts.IncludePositions {
					start, _ := fs.Resolve(n.Span)
					no.Line, no.Col = start.Line, start.Col
				}
				out.Notes = append(out.Notes, no)
			}
		}
		output = append(output, out)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
