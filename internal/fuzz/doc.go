// Package fuzztests houses Go fuzz harnesses that exercise the
// compilation pipeline (source -> lexer -> parser -> sema -> irgen).
// Its goal is to smoke test robustness and guard against panics, hangs,
// or allocator explosions on arbitrary inputs.
package fuzztests
