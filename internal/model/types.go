// Package model defines shared data structures.
package model

import "time"

// Line is one raw input line with its 1-based position in the file.
type Line struct {
	Num  int
	Text string
}

// LineError records an input line that failed validation. The run
// continues; the line is only counted and echoed to stderr.
type LineError struct {
	Line int
	Text string
}

// ConvertOptions configures number conversion.
type ConvertOptions struct {
	// Bits is the two's-complement width used for negative values.
	// Must be 8, 16, 32 or 64.
	Bits int
}

// WordCountOptions configures word tokenization.
type WordCountOptions struct {
	Lowercase bool
	KeepPunct bool
}

// RunRecord summarizes one completed utility run for the history store.
type RunRecord struct {
	ID           int64
	Tool         string
	InputPath    string
	OutputPath   string
	StartedAt    time.Time
	FinishedAt   time.Time
	ValidCount   int
	InvalidCount int
	DurationMs   int64
}
