package utils

import (
	"regexp"
	"strconv"
)

// ParseInt converts string to int with default value
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// ParseFloat converts string to optional float, nil when absent or malformed
func ParseFloat(value string) *float64 {
	if value == "" {
		return nil
	}

	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}

	return &result
}

var phonePattern = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

// IsValidPhone checks the phone number format accepted at signup and code send
func IsValidPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
