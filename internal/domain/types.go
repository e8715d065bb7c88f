package domain

import (
	"database/sql/driver"
	"fmt"
)

// Language is the tag stored in the output lang column.
type Language string

const (
	LanguageJapanese Language = "ja"
	LanguageKorean   Language = "ko"
	LanguageEnglish  Language = "en"
)

// SupportedLanguages lists every tag in report order.
var SupportedLanguages = []Language{LanguageJapanese, LanguageKorean, LanguageEnglish}

// Valid reports whether l is one of the supported tags.
func (l Language) Valid() bool {
	switch l {
	case LanguageJapanese, LanguageKorean, LanguageEnglish:
		return true
	}
	return false
}

func (l Language) Value() (driver.Value, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("unsupported language tag %q", string(l))
	}
	return string(l), nil
}

func (l *Language) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return fmt.Errorf("cannot scan %T into Language", value)
	}

	lang := Language(s)
	if !lang.Valid() {
		return fmt.Errorf("unsupported language tag %q", s)
	}
	*l = lang
	return nil
}
