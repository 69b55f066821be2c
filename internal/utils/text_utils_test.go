package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestTextProcessor_TruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	tests := []struct {
		name    string
		text    string
		maxSize int
		want    string
	}{
		{name: "no limit", text: "hello", maxSize: 0, want: "hello"},
		{name: "within limit", text: "hello", maxSize: 5, want: "hello"},
		{name: "cut", text: "hello world", maxSize: 5, want: "hello" + TruncationMarker},
		{name: "multibyte boundary", text: "h\u00e9llo", maxSize: 2, want: "h" + TruncationMarker},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tp.TruncateText(tt.text, tt.maxSize)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestTextProcessor_SanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	assert.Equal(t, "plain", tp.SanitizeUTF8("plain"))
	assert.Equal(t, "ab", tp.SanitizeUTF8("a\xffb"))
	assert.Equal(t, "ab", tp.SanitizeUTF8("a\x00b"))
	assert.Equal(t, "a\ufffdb", tp.SanitizeUTF8("a\ufffdb"))
}

func TestTextProcessor_ProcessText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// e + combining acute accent composes to a single rune
	got := tp.ProcessText("Cafe\u0301\xff", 0)
	assert.Equal(t, "Caf\u00e9", got)

	long := strings.Repeat("a", 100)
	assert.Equal(t, strings.Repeat("a", 10)+TruncationMarker, tp.ProcessText(long, 10))
}
