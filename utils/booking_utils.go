package utils

import (
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"regexp"
	"strings"
)

//
// ===========================================================
//  ENV UTILITIES
// ===========================================================
//

// EnvOrDefault returns ENV value or fallback default.
func EnvOrDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

//
// ===========================================================
//  BOOKING ID & CONFIRMATION NUMBER
// ===========================================================
//

const bookingCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// BookingIDLength is the number of charset characters in a booking id.
const BookingIDLength = 8

// ConfirmationPrefix is prepended to the booking id to form the
// confirmation number.
const ConfirmationPrefix = "FT"

// GenerateBookingID returns a short uppercase token (A-Z0-9) such as
// "AB4D93KF". Uses crypto/rand + rand.Int (math/big) to avoid modulo
// bias.
func GenerateBookingID() (string, error) {
	return randomToken(BookingIDLength)
}

func randomToken(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(bookingCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(bookingCharset[num.Int64()])
	}
	return sb.String(), nil
}

// ConfirmationNumber derives the confirmation number from a booking id.
func ConfirmationNumber(bookingID string) string {
	return ConfirmationPrefix + bookingID
}

var bookingIDPattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// IsValidBookingIDFormat reports whether id looks like a booking id.
func IsValidBookingIDFormat(id string) bool {
	return bookingIDPattern.MatchString(strings.TrimSpace(id))
}

//
// ===========================================================
//  PAYMENT DISPLAY HELPERS
// ===========================================================
//

// MaskCardNumber returns a masked card number for safe display,
// keeping only the last four digits.
func MaskCardNumber(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	if len(digits) <= 4 {
		return digits
	}
	return strings.Repeat("*", len(digits)-4) + digits[len(digits)-4:]
}
