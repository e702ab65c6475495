package utils

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// ==================== UUID ====================

func GenerateUUID() uuid.UUID {
	return uuid.New()
}

func ParseUUID(uuidStr string) (uuid.UUID, error) {
	return uuid.Parse(uuidStr)
}

// ==================== VERIFICATION CODE ====================

// GenerateVerificationCode creates a numeric one-time code of the given length
func GenerateVerificationCode(length int) string {
	if length <= 0 {
		length = 6
	}

	var sb strings.Builder
	for i := 0; i < length; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken
			sb.WriteByte('0')
			continue
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}

	return sb.String()
}

// ==================== SLUG ====================

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a display name into a URL-friendly slug
func Slugify(name string) string {
	slug := strings.ToLower(name)
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// SlugFromEmail derives a shop slug from the local part of an email address
func SlugFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return Slugify(local)
}
