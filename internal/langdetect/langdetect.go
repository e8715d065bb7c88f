// Package langdetect decides whether a lyric text is Japanese, Korean or
// English. Anything else is unsupported and dropped by the pipeline.
package langdetect

import (
	"fmt"

	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/domain"
)

// Classifier is total: every input, including "", yields a verdict.
// ok is false for unsupported text.
type Classifier interface {
	Classify(text string) (lang domain.Language, ok bool)
}

// New returns the classifier registered under name.
func New(name string) (Classifier, error) {
	switch name {
	case constants.ClassifierCodepoint, "":
		return Codepoint{}, nil
	case constants.ClassifierLingua:
		return NewLingua(), nil
	default:
		return nil, fmt.Errorf("unknown classifier %q", name)
	}
}

// tooShort applies the shared length floor, measured in UTF-8 bytes.
func tooShort(text string) bool {
	return len(text) < constants.MinClassifyBytes
}
