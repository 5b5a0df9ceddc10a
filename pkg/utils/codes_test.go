package utils

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGroupCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := GenerateGroupCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		for _, r := range code {
			assert.True(t, strings.ContainsRune(groupCodeAlphabet, r), "unexpected rune %q", r)
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		seen[code] = true
	}
	// 32^6 codes, 50 draws colliding would mean a broken generator.
	assert.Greater(t, len(seen), 45)
}

func TestGenerateBookingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^TRIP-[0-9A-F]{8}$`)
	for i := 0; i < 20; i++ {
		num, err := GenerateBookingNumber()
		require.NoError(t, err)
		assert.Regexp(t, pattern, num)
	}
}

func TestGenerateOTP(t *testing.T) {
	otp, err := GenerateOTP(6)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
	assert.Regexp(t, `^[0-9]{6}$`, otp)

	// Non-positive length falls back to six digits.
	otp, err = GenerateOTP(0)
	require.NoError(t, err)
	assert.Len(t, otp, 6)
}
