// Package testkit holds invariant checks shared by tests across the
// compiler packages.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"minicc/internal/ast"
	"minicc/internal/sema"
	"minicc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed unit:
// 1) unit.Span is non-empty and within file content bounds
// 2) every top-level declaration span is non-empty and fully contained in unit.Span
// 3) unit.Span covers the union of declaration spans (if any exist)
func CheckSpanInvariants(b *ast.Builder, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	unit := &b.Unit
	if len(unit.Decls) == 0 {
		// An empty unit carries no span guarantees.
		return nil
	}

	// 1) unit span sanity
	if unit.Span.End <= unit.Span.Start {
		return fmt.Errorf("unit span is empty: %v", unit.Span)
	}
	if unit.Span.File != sf.ID {
		return fmt.Errorf("unit span points to different file id: got=%d want=%d", unit.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if unit.Span.End > lenContent {
		return fmt.Errorf("unit span end beyond content: %d > %d", unit.Span.End, lenContent)
	}

	// 2) declaration spans within unit span; 3) unit covers union
	var union source.Span
	var haveDecl bool
	for _, id := range unit.Decls {
		decl := b.Decls.Get(id)
		if decl == nil {
			return fmt.Errorf("nil declaration for id=%d", id)
		}
		sp := decl.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("empty declaration span: %v", sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("declaration span file mismatch: got=%d want=%d", sp.File, sf.ID)
		}
		if sp.Start < unit.Span.Start || sp.End > unit.Span.End {
			return fmt.Errorf("declaration span %v is outside unit span %v", sp, unit.Span)
		}
		if !haveDecl {
			union = sp
			haveDecl = true
		} else {
			union = union.Cover(sp)
		}
	}

	if haveDecl {
		if union.Start < unit.Span.Start || union.End > unit.Span.End {
			return fmt.Errorf("unit span %v does not cover union of declarations %v", unit.Span, union)
		}
	}
	return nil
}

// CheckExprTypesCoverage verifies that every allocated expression got a
// type during checking. Only meaningful on error-free units: the checker
// stops typing subtrees it has already rejected.
func CheckExprTypesCoverage(b *ast.Builder, info *sema.Info) error {
	if b == nil || info == nil {
		return fmt.Errorf("nil builder or info")
	}
	count := b.Exprs.Arena.Len()
	for id := uint32(1); id <= count; id++ {
		if _, ok := info.ExprTypes[ast.ExprID(id)]; !ok {
			expr := b.Exprs.Get(ast.ExprID(id))
			return fmt.Errorf("expression %d (kind %d, span %v) has no type", id, expr.Kind, expr.Span)
		}
	}
	return nil
}
