package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRandomString(t *testing.T) {
	for _, n := range []int{1, 8, 25, 40} {
		s := RandomString(n)
		assert.Len(t, s, n)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(randomChars, r))
		}
	}

	// Codes longer than the nanosecond-timestamp fallback digits must
	// still come back at full length.
	assert.Len(t, RandomString(32), 32)
}

func TestParseDateParam(t *testing.T) {
	fallback := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	parsed := ParseDateParam("2025-03-09", fallback)
	assert.Equal(t, "2025-03-09", parsed.Format("2006-01-02"))

	assert.Equal(t, fallback, ParseDateParam("", fallback))
	assert.Equal(t, fallback, ParseDateParam("not-a-date", fallback))
}
