package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhoneNumber(t *testing.T) {
	assert.Equal(t, "84912345678", FormatPhoneNumber("0912345678"))
	assert.Equal(t, "84912345678", FormatPhoneNumber("0912 345 678"))
	assert.Equal(t, "84912345678", FormatPhoneNumber("+84 912-345-678"))
	assert.Equal(t, "84912345678", FormatPhoneNumber("84912345678"))
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("0912345678"))
	assert.True(t, ValidatePhoneNumber("+84 358 123 456"))
	assert.True(t, ValidatePhoneNumber("0712345678"))

	assert.False(t, ValidatePhoneNumber("0112345678")) // landline prefix
	assert.False(t, ValidatePhoneNumber("091234567"))  // too short
	assert.False(t, ValidatePhoneNumber("09123456789"))
	assert.False(t, ValidatePhoneNumber(""))
}

func TestDisplayPhoneNumber(t *testing.T) {
	assert.Equal(t, "+84 912 345 678", DisplayPhoneNumber("0912345678"))
	assert.Equal(t, "not-a-number", DisplayPhoneNumber("not-a-number"))
}
