// Package dedup holds the two run-scoped indices that decide whether an
// accepted record duplicates one already written: a content fingerprint set
// and a metadata identity map. Neither is safe for concurrent use; both are
// owned by a single pipeline run.
package dedup

import (
	"crypto/md5"

	"github.com/cesargomez89/lrcsieve/internal/textnorm"
)

// Fingerprint is the 128-bit digest of fingerprint-normalized lyric text.
type Fingerprint [md5.Size]byte

type FingerprintResult int

const (
	FingerprintAccepted FingerprintResult = iota
	FingerprintDuplicate
	// FingerprintSkipped means the text normalized to nothing; content
	// dedup does not apply and the record moves on.
	FingerprintSkipped
)

func (r FingerprintResult) String() string {
	switch r {
	case FingerprintAccepted:
		return "accepted"
	case FingerprintDuplicate:
		return "duplicate"
	case FingerprintSkipped:
		return "skipped"
	}
	return "unknown"
}

// FingerprintIndex remembers every digest seen in the run. Entries are never
// removed, so the first record with a given content wins for good.
type FingerprintIndex struct {
	seen map[Fingerprint]struct{}
}

func NewFingerprintIndex(capacity int) *FingerprintIndex {
	return &FingerprintIndex{seen: make(map[Fingerprint]struct{}, capacity)}
}

// ComputeFingerprint returns the digest of text and false when the text
// normalizes to an empty string.
func ComputeFingerprint(strippedText string) (Fingerprint, bool) {
	norm := textnorm.NormalizeForFingerprint(strippedText)
	if norm == "" {
		return Fingerprint{}, false
	}
	return md5.Sum([]byte(norm)), true
}

// CheckAndInsert takes time-marker-stripped lyric text.
func (idx *FingerprintIndex) CheckAndInsert(strippedText string) FingerprintResult {
	fp, ok := ComputeFingerprint(strippedText)
	if !ok {
		return FingerprintSkipped
	}
	if _, dup := idx.seen[fp]; dup {
		return FingerprintDuplicate
	}
	idx.seen[fp] = struct{}{}
	return FingerprintAccepted
}

func (idx *FingerprintIndex) Len() int {
	return len(idx.seen)
}
