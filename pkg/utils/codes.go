package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// Alphabet for group invite codes. Skips 0/O and 1/I to keep codes
// readable when shared over chat.
const groupCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GenerateGroupCode returns a 6-character invite code.
func GenerateGroupCode() (string, error) {
	var sb strings.Builder
	max := big.NewInt(int64(len(groupCodeAlphabet)))
	for i := 0; i < 6; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate group code: %w", err)
		}
		sb.WriteByte(groupCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

// GenerateBookingNumber returns a booking reference like "TRIP-9F3A21BC".
func GenerateBookingNumber() (string, error) {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate booking number: %w", err)
	}
	return fmt.Sprintf("TRIP-%X", buf), nil
}

// GenerateOTP returns a zero-padded numeric one-time code of the given length.
func GenerateOTP(length int) (string, error) {
	if length <= 0 {
		length = 6
	}
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", fmt.Errorf("failed to generate otp: %w", err)
		}
		sb.WriteString(n.String())
	}
	return sb.String(), nil
}
