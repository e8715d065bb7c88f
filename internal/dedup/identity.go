package dedup

import (
	"math"

	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/textnorm"
)

// IdentityKey approximates "the same musical work".
type IdentityKey struct {
	Artist string
	Track  string
	Bucket int64
}

// NewIdentityKey normalizes the names and buckets the duration.
func NewIdentityKey(artist, track string, duration *float64) IdentityKey {
	return IdentityKey{
		Artist: textnorm.NormalizeIdentityName(artist),
		Track:  textnorm.NormalizeIdentityName(track),
		Bucket: DurationBucket(duration),
	}
}

// DurationBucket rounds duration/10 half away from zero; a missing duration
// counts as 0. 186s and 194s share bucket 19, 184s and 196s do not.
func DurationBucket(duration *float64) int64 {
	var d float64
	if duration != nil {
		d = *duration
	}
	return int64(math.Round(d / constants.DurationBucketSeconds))
}

type IdentityOutcome int

const (
	IdentityInserted IdentityOutcome = iota
	IdentitySuperseded
	IdentityRejectedShorter
)

func (o IdentityOutcome) String() string {
	switch o {
	case IdentityInserted:
		return "inserted"
	case IdentitySuperseded:
		return "superseded"
	case IdentityRejectedShorter:
		return "rejected_shorter"
	}
	return "unknown"
}

// Resolution is the outcome of Resolve. PriorID is set only when Outcome is
// IdentitySuperseded and names the output row that must be deleted.
type Resolution struct {
	Outcome IdentityOutcome
	PriorID int64
}

type identityEntry struct {
	id    int64
	lines int
}

// IdentityIndex maps each key to the retained record with the most lines.
type IdentityIndex struct {
	entries map[IdentityKey]identityEntry
}

func NewIdentityIndex(capacity int) *IdentityIndex {
	return &IdentityIndex{entries: make(map[IdentityKey]identityEntry, capacity)}
}

// Resolve applies longer-wins: a candidate replaces the stored record only
// with strictly more lines; ties keep the earlier record.
func (idx *IdentityIndex) Resolve(key IdentityKey, candidateID int64, candidateLines int) Resolution {
	prev, found := idx.entries[key]
	if !found {
		idx.entries[key] = identityEntry{id: candidateID, lines: candidateLines}
		return Resolution{Outcome: IdentityInserted}
	}
	if prev.lines >= candidateLines {
		return Resolution{Outcome: IdentityRejectedShorter}
	}
	idx.entries[key] = identityEntry{id: candidateID, lines: candidateLines}
	return Resolution{Outcome: IdentitySuperseded, PriorID: prev.id}
}

// Lookup returns the retained record id and line count for key.
func (idx *IdentityIndex) Lookup(key IdentityKey) (id int64, lines int, ok bool) {
	e, ok := idx.entries[key]
	return e.id, e.lines, ok
}

func (idx *IdentityIndex) Len() int {
	return len(idx.entries)
}
