package langdetect

import (
	"github.com/cesargomez89/lrcsieve/internal/constants"
	"github.com/cesargomez89/lrcsieve/internal/domain"
)

// Codepoint counts runes per Unicode block and decides on fixed thresholds.
// Kana or Hangul win as soon as ten are seen; a text dominated by Arabic,
// Cyrillic, Devanagari or Thai is rejected; otherwise 30 Latin letters make
// it English.
type Codepoint struct{}

func (Codepoint) Classify(text string) (domain.Language, bool) {
	if tooShort(text) {
		return "", false
	}

	var ja, ko, latin, excluded int
	for _, r := range text {
		switch {
		case isKana(r):
			ja++
			if ja >= constants.JapaneseMinChars {
				return domain.LanguageJapanese, true
			}
		case isHangul(r):
			ko++
			if ko >= constants.KoreanMinChars {
				return domain.LanguageKorean, true
			}
		case isLatin(r):
			latin++
		case isExcluded(r):
			excluded++
			if excluded > constants.ExcludedMaxChars {
				return "", false
			}
		}
	}

	if excluded > constants.ExcludedMaxChars && excluded > latin {
		return "", false
	}
	if latin >= constants.LatinMinChars {
		return domain.LanguageEnglish, true
	}
	return "", false
}

// Hiragana and Katakana. Kanji are shared with Chinese and do not count.
func isKana(r rune) bool {
	return (r >= 0x3040 && r <= 0x309F) || (r >= 0x30A0 && r <= 0x30FF)
}

// Hangul syllables.
func isHangul(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7AF
}

// ASCII letters plus Latin-1 Supplement letters through Latin Extended-B.
func isLatin(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') || (r >= 0xC0 && r <= 0x24F)
}

// Arabic, Cyrillic, Devanagari, Thai.
func isExcluded(r rune) bool {
	return (r >= 0x600 && r <= 0x6FF) ||
		(r >= 0x400 && r <= 0x4FF) ||
		(r >= 0x900 && r <= 0x97F) ||
		(r >= 0xE00 && r <= 0xE7F)
}
