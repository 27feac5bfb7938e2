package logging

import (
	"log/slog"
	"sync"
)

// BoundedWarner logs at most Limit occurrences of each distinct message
// through the given logger, then silently drops further repeats. It
// exists for heuristics that can legitimately fail often on a partially
// observable board (see observation.TrackStats): logging every miss would
// flood the log, but the first few are worth seeing.
type BoundedWarner struct {
	Log   *slog.Logger
	Limit int

	mu       sync.Mutex
	remaining map[string]int
}

// NewBoundedWarner returns a BoundedWarner that allows each distinct
// message through limit times before going quiet on it.
func NewBoundedWarner(log *slog.Logger, limit int) *BoundedWarner {
	return &BoundedWarner{Log: log, Limit: limit, remaining: make(map[string]int)}
}

// Warn logs msg if this exact message has not yet exceeded its limit.
func (w *BoundedWarner) Warn(msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	left, seen := w.remaining[msg]
	if !seen {
		left = w.Limit
	}
	if left <= 0 {
		return
	}
	left--
	w.remaining[msg] = left

	w.Log.Warn(msg, "remainingRepeats", left)
}
