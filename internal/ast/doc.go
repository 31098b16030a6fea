// Package ast defines the syntax tree produced by the parser. Nodes
// live in typed arenas indexed by 1-based IDs; index 0 is the "no node"
// sentinel for every ID type. Per-kind payload arenas keep the node
// headers small and the tree cheap to allocate.
package ast
