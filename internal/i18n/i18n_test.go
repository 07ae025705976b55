package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_Detect(t *testing.T) {
	t.Parallel()
	tr := NewTranslator(English)

	tests := []struct {
		header string
		want   string
	}{
		{"", English},
		{"ar-EG,ar;q=0.9,en;q=0.8", Arabic},
		{"EN-gb", English},
		{"fr-FR, ar;q=0.5", Arabic},
		{"fr-FR,de", English},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tr.Detect(tt.header), tt.header)
	}
}

func TestTranslator_T(t *testing.T) {
	t.Parallel()
	tr := NewTranslator(Arabic)

	assert.Equal(t, "Person not found", tr.T(English, CodePersonNotFound))
	assert.Equal(t, "الشخص غير موجود", tr.T(Arabic, CodePersonNotFound))
	assert.Equal(t, "الشخص غير موجود", tr.T("fr", CodePersonNotFound), "unknown language uses fallback")
	assert.Equal(t, "__nope__", tr.T(English, "__nope__"), "unknown code falls back to the code")
}

func TestNewTranslator_UnsupportedFallback(t *testing.T) {
	t.Parallel()
	tr := NewTranslator("fr")
	assert.Equal(t, English, tr.Default())
}

func TestMessageTablesComplete(t *testing.T) {
	t.Parallel()
	for code := range messages[English] {
		_, ok := messages[Arabic][code]
		assert.True(t, ok, "missing arabic message for %q", code)
	}
	assert.Len(t, messages[Arabic], len(messages[English]))
}
