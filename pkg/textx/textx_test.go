package textx_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/fairyhunter13/resume-screener/pkg/textx"
)

func TestSanitizeText(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "Jane Doe\nSkills:\tPython", textx.SanitizeText("  Jane Doe\nSkills:\tPython \x00\x08 "))
	assert.Equal(t, "", textx.SanitizeText("\x00\x01\x02"))
	assert.Equal(t, "", textx.SanitizeText("   \n\t  "))
	assert.Equal(t, "héllo", textx.SanitizeText("héllo\x7f"))
}

func TestNormalizeNewlines(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "a\nb\nc\n", textx.NormalizeNewlines("a\r\nb\rc\n"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "abc", textx.Truncate("abc", 10))
	assert.Equal(t, "abc", textx.Truncate("abcdef", 3))
	assert.Equal(t, "abc", textx.Truncate("abc", 0), "non-positive max leaves s intact")

	// A cut inside a multi-byte rune backs up to the boundary; the dangling
	// lead byte must go with its continuation bytes.
	got := textx.Truncate("aé", 2) // 'é' is two bytes
	assert.Equal(t, "a", got)
	assert.True(t, utf8.ValidString(got))

	// A cut landing exactly after a complete rune keeps that rune.
	assert.Equal(t, "é", textx.Truncate("éX", 2))

	for max := 1; max <= 8; max++ {
		out := textx.Truncate(strings.Repeat("é", 100), max)
		assert.True(t, utf8.ValidString(out), "max=%d", max)
		assert.LessOrEqual(t, len(out), max)
	}
}
