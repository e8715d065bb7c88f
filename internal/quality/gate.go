// Package quality implements the cheap pre-filter that drops records with too
// few lines or too little text before any classification or hashing.
package quality

import (
	"strings"

	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/textnorm"
)

type Reason string

const (
	ReasonNone        Reason = ""
	ReasonFewLines    Reason = "too_few_lines"
	ReasonShortLyrics Reason = "too_little_text"
)

// Gate holds the thresholds. Text length is measured in UTF-8 bytes, which
// is looser than a rune count for multi-byte scripts.
type Gate struct {
	MinLines     int
	MinTextBytes int
}

// Result carries the line count so later stages do not recount it.
type Result struct {
	Lines  int
	Passed bool
	Reason Reason
}

func NewGate(minLines, minTextBytes int) Gate {
	return Gate{MinLines: minLines, MinTextBytes: minTextBytes}
}

func DefaultGate() Gate {
	return NewGate(constants.DefaultMinLines, constants.DefaultMinTextBytes)
}

// Evaluate checks the raw lyric text and its time-marker-stripped form.
func (g Gate) Evaluate(raw, stripped string) Result {
	lines := textnorm.LineCount(raw)
	if lines < g.MinLines {
		return Result{Lines: lines, Reason: ReasonFewLines}
	}
	if len(strings.TrimSpace(stripped)) < g.MinTextBytes {
		return Result{Lines: lines, Reason: ReasonShortLyrics}
	}
	return Result{Lines: lines, Passed: true}
}
