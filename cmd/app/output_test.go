package main

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-ten", truncate("exactly-ten", 11))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))

	// A cut inside a multibyte rune must not leave invalid UTF-8.
	accented := strings.Repeat("é", 60)
	out := truncate(accented, 48)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, strings.Repeat("é", 45)+"...", out)

	cjk := strings.Repeat("知", 60)
	out = truncate(cjk, 48)
	assert.True(t, utf8.ValidString(out))
	assert.Len(t, []rune(out), 48)
}
