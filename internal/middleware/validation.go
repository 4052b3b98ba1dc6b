package middleware

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field length limits matching database schema constraints.
const (
	MaxFingerprintLen = 128 // watch_sessions.device_fingerprint VARCHAR(128)
	MaxFeedLimit      = 200
)

// uuidRe matches canonical lowercase UUIDs (all platform IDs).
var uuidRe = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateID checks that an identifier is a well-formed UUID. Returns the
// normalized ID, or an error message naming the field.
func ValidateID(field, id string) (string, string) {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return "", field + " is required"
	}
	if !uuidRe.MatchString(id) {
		return "", field + " must be a valid UUID"
	}
	return id, ""
}

// ValidateLimit parses the feed limit query parameter. Empty input falls
// back to the default; out-of-range values are rejected.
func ValidateLimit(raw string, fallback int) (int, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, ""
	}
	limit, err := strconv.Atoi(raw)
	if err != nil {
		return 0, "limit must be an integer"
	}
	if limit < 1 || limit > MaxFeedLimit {
		return 0, "limit must be between 1 and 200"
	}
	return limit, ""
}

// ValidateFingerprint trims and truncates a device fingerprint to DB limits.
// Fingerprints are opaque client strings; an empty one is rejected because
// the suspicious-pattern detector depends on it.
func ValidateFingerprint(fp string) (string, string) {
	fp = strings.TrimSpace(fp)
	if fp == "" {
		return "", "deviceFingerprint is required"
	}
	if len(fp) > MaxFingerprintLen {
		fp = fp[:MaxFingerprintLen]
	}
	return fp, ""
}
