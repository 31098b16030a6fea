package lexer_test

import (
	"testing"

	"minicc/internal/lexer"
	"minicc/internal/source"
)

func TestCursorBasics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("cur.c", []byte("ab")))
	c := lexer.NewCursor(file)

	if c.EOF() {
		t.Fatal("cursor at EOF on non-empty file")
	}
	if c.Peek() != 'a' {
		t.Errorf("Peek = %q", c.Peek())
	}
	m := c.Mark()
	if c.Bump() != 'a' || c.Bump() != 'b' {
		t.Error("Bump order wrong")
	}
	if !c.EOF() {
		t.Error("expected EOF after consuming all bytes")
	}
	if c.Bump() != 0 {
		t.Error("Bump at EOF must return 0")
	}
	sp := c.SpanFrom(m)
	if sp.Start != 0 || sp.End != 2 || sp.File != file.ID {
		t.Errorf("SpanFrom = %+v", sp)
	}
	c.Reset(m)
	if !c.Eat('a') {
		t.Error("Eat('a') after Reset failed")
	}
	if c.Eat('x') {
		t.Error("Eat('x') must not consume 'b'")
	}
}
