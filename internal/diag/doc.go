// Package diag is the single channel stages use to report problems with the
// input. Diagnostics are accumulated in a Bag in detection order; malformed
// input never raises an error or panic, it produces diagnostics. Panics are
// reserved for violated internal invariants.
package diag
