// Package validation checks user-supplied names before they are sent to
// S3, so obviously bad input fails locally with a clear message instead
// of a confusing API error.
package validation

import (
	"errors"
	"strings"
	"unicode"
)

// BucketName validates a bucket name against the S3 DNS-compliance rules.
func BucketName(bucket string) error {
	if len(bucket) < 3 || len(bucket) > 63 {
		return errors.New("bucket name must be between 3 and 63 characters long")
	}
	for _, r := range bucket {
		if !isBucketChar(r) {
			return errors.New("bucket name can only contain lowercase letters, numbers, dots, and hyphens")
		}
	}
	if isEdgeChar(bucket[0]) || isEdgeChar(bucket[len(bucket)-1]) {
		return errors.New("bucket name cannot start or end with a hyphen or dot")
	}
	if strings.Contains(bucket, "..") || strings.Contains(bucket, "--") ||
		strings.Contains(bucket, ".-") || strings.Contains(bucket, "-.") {
		return errors.New("bucket name cannot contain adjacent dots or hyphens")
	}
	if isIPAddress(bucket) {
		return errors.New("bucket name cannot be formatted as an IP address")
	}
	return nil
}

// ObjectKey validates a resolved object key. Keys produced by path
// normalization are already clean; this guards length and control
// characters, which S3 accepts but no ftp-style tool should produce.
func ObjectKey(key string) error {
	if key == "" {
		return errors.New("object key cannot be empty")
	}
	if len(key) > 1024 {
		return errors.New("object key cannot exceed 1024 bytes")
	}
	for _, r := range key {
		if unicode.IsControl(r) {
			return errors.New("object key cannot contain control characters")
		}
	}
	return nil
}

// SanitizeMetadata strips control characters from metadata keys and
// values before they go onto a request.
func SanitizeMetadata(metadata map[string]string) map[string]string {
	if metadata == nil {
		return nil
	}
	clean := make(map[string]string, len(metadata))
	for k, v := range metadata {
		clean[stripControl(k)] = stripControl(v)
	}
	return clean
}

func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

func isBucketChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '-'
}

func isEdgeChar(b byte) bool {
	return b == '.' || b == '-'
}

func isIPAddress(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, part := range parts {
		if part == "" || len(part) > 3 {
			return false
		}
		n := 0
		for _, r := range part {
			if r < '0' || r > '9' {
				return false
			}
			n = n*10 + int(r-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}
