package handler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestClampTitle(t *testing.T) {
	assert.Equal(t, "notes.pdf", clampTitle("notes.pdf"))
	assert.Empty(t, clampTitle(""))

	exact := strings.Repeat("a", maxTitleLen)
	assert.Equal(t, exact, clampTitle(exact))

	long := strings.Repeat("a", maxTitleLen+50)
	assert.Equal(t, exact, clampTitle(long))
}

func TestClampTitle_MultiByte(t *testing.T) {
	// 199 ASCII characters followed by multi-byte runes: a byte-indexed
	// cut at 200 would split the first one.
	title := strings.Repeat("a", maxTitleLen-1) + strings.Repeat("日", 10)

	clamped := clampTitle(title)
	assert.True(t, utf8.ValidString(clamped))
	assert.Equal(t, maxTitleLen, utf8.RuneCountInString(clamped))
	assert.True(t, strings.HasSuffix(clamped, "日"))
}
