package domain

import (
	"errors"
	"strings"
)

// Language is a two-letter locale code supported by the storefront.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageArabic  Language = "ar"

	DefaultLanguage = LanguageEnglish
)

var ErrUnsupportedLanguage = errors.New("language must be one of en, ar")

// ParseLanguage validates a locale code.
func ParseLanguage(raw string) (Language, error) {
	switch lang := Language(strings.ToLower(strings.TrimSpace(raw))); lang {
	case LanguageEnglish, LanguageArabic:
		return lang, nil
	default:
		return "", ErrUnsupportedLanguage
	}
}

// Direction is the text direction pages render in.
func (l Language) Direction() string {
	if l == LanguageArabic {
		return "rtl"
	}
	return "ltr"
}

// Pick returns the localized variant for l, falling back to en when ar is blank.
func (l Language) Pick(en, ar string) string {
	if l == LanguageArabic && strings.TrimSpace(ar) != "" {
		return ar
	}
	return en
}
