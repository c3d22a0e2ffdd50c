package utils

import (
	"regexp"
	"strings"
)

var nonDigits = regexp.MustCompile(`\D`)

// FormatPhoneNumber strips formatting and ensures the number carries the
// Vietnam country code (+84).
func FormatPhoneNumber(phoneNumber string) string {
	digits := nonDigits.ReplaceAllString(phoneNumber, "")

	if len(digits) > 0 && !strings.HasPrefix(digits, "84") {
		// Drop the trunk zero before prefixing the country code
		digits = strings.TrimLeft(digits, "0")
		digits = "84" + digits
	}

	return digits
}

// ValidatePhoneNumber checks a local Vietnamese mobile number: nine
// digits after the trunk zero, starting with 3, 5, 7, 8 or 9.
func ValidatePhoneNumber(phoneNumber string) bool {
	cleaned := nonDigits.ReplaceAllString(phoneNumber, "")
	cleaned = strings.TrimPrefix(cleaned, "84")
	cleaned = strings.TrimLeft(cleaned, "0")

	if len(cleaned) != 9 {
		return false
	}

	switch cleaned[0] {
	case '3', '5', '7', '8', '9':
		return true
	}
	return false
}

// NormalizePhoneNumber normalizes a phone number for database storage.
func NormalizePhoneNumber(phoneNumber string) string {
	return FormatPhoneNumber(phoneNumber)
}

// DisplayPhoneNumber formats a stored number for display: +84 xxx xxx xxx.
func DisplayPhoneNumber(phoneNumber string) string {
	formatted := FormatPhoneNumber(phoneNumber)
	if len(formatted) == 11 && strings.HasPrefix(formatted, "84") {
		return "+" + formatted[:2] + " " + formatted[2:5] + " " + formatted[5:8] + " " + formatted[8:]
	}
	return phoneNumber
}
