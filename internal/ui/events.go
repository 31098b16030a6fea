// Package ui renders interactive compile progress for terminal runs.
package ui

// Stage identifies a compiler stage for progress reporting.
type Stage uint8

const (
	StageQueued Stage = iota
	StageTokenize
	StageParse
	StageAnalyze
	StageGenerate
)

// Status is the coarse state of one file.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress for one file, or for the whole run when File
// is empty.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}
