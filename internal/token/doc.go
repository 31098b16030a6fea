// Package token defines the lexical vocabulary of the supported C subset:
// token kinds, the keyword table, and the Token value produced by the lexer.
// Tokens are immutable once produced.
package token
