package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguage(t *testing.T) {
	lang, err := ParseLanguage(" AR ")
	require.NoError(t, err)
	assert.Equal(t, LanguageArabic, lang)

	_, err = ParseLanguage("fr")
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestLanguage_DirectionAndPick(t *testing.T) {
	assert.Equal(t, "rtl", LanguageArabic.Direction())
	assert.Equal(t, "ltr", LanguageEnglish.Direction())
	assert.Equal(t, "أحمر شفاه", LanguageArabic.Pick("Lipstick", "أحمر شفاه"))
	assert.Equal(t, "Lipstick", LanguageArabic.Pick("Lipstick", " "))
	assert.Equal(t, "Lipstick", LanguageEnglish.Pick("Lipstick", "أحمر شفاه"))
}
