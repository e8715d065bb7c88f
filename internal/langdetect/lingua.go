package langdetect

import (
	"sync"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/cesargomez89/lrcsieve/internal/domain"
)

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Lingua defers to the n-gram models of lingua-go. Unlike Codepoint it
// tells English apart from other Latin-script languages, at a large cost in
// memory and throughput.
type Lingua struct {
	detect func(text string) (lingua.Language, bool)
}

func NewLingua() *Lingua {
	return &Lingua{
		detect: func(text string) (lingua.Language, bool) {
			return getDetector().DetectLanguageOf(text)
		},
	}
}

func (l *Lingua) Classify(text string) (domain.Language, bool) {
	if tooShort(text) {
		return "", false
	}

	detected, exists := l.detect(text)
	if !exists {
		return "", false
	}
	return fromLingua(detected)
}

func fromLingua(l lingua.Language) (domain.Language, bool) {
	switch l {
	case lingua.Japanese:
		return domain.LanguageJapanese, true
	case lingua.Korean:
		return domain.LanguageKorean, true
	case lingua.English:
		return domain.LanguageEnglish, true
	}
	return "", false
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			WithLowAccuracyMode().
			Build()
	})
	return detector
}
