package diag

import "minicc/internal/source"

// Reporter is the minimal contract stages use to hand off diagnostics.
// Implementations: BagReporter (appends to a Bag), NopReporter.
type Reporter interface {
	Report(kind Kind, sev Severity, primary source.Span, msg string, notes []Note)
}

// BagReporter writes every report into a Bag. The two warning modes
// apply before anything lands: IgnoreWarnings drops warning-severity
// reports, WarningsAsErrors upgrades them to errors. Errors and infos
// pass through either way.
type BagReporter struct {
	Bag              *Bag
	IgnoreWarnings   bool
	WarningsAsErrors bool
}

func (r BagReporter) Report(kind Kind, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	if sev == SevWarning {
		if r.IgnoreWarnings {
			return
		}
		if r.WarningsAsErrors {
			sev = SevError
		}
	}
	r.Bag.Add(Diagnostic{
		Severity: sev, Kind: kind, Message: msg,
		Primary: primary, Notes: notes,
	})
}

// NopReporter discards everything. Used by fuzz targets that only care
// about termination.
type NopReporter struct{}

func (NopReporter) Report(Kind, Severity, source.Span, string, []Note) {}
