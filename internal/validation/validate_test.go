package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketName(t *testing.T) {
	tests := []struct {
		name    string
		bucket  string
		wantErr bool
	}{
		{"simple", "my-bucket", false},
		{"with numbers", "my-bucket123", false},
		{"with dots", "my.bucket", false},
		{"min length", "abc", false},
		{"max length", strings.Repeat("a", 63), false},

		{"empty", "", true},
		{"too short", "ab", true},
		{"too long", strings.Repeat("a", 64), true},
		{"uppercase", "My-Bucket", true},
		{"underscore", "my_bucket", true},
		{"starts with hyphen", "-bucket", true},
		{"ends with dot", "bucket.", true},
		{"adjacent dots", "my..bucket", true},
		{"adjacent hyphens", "my--bucket", true},
		{"ip address", "192.168.1.1", true},
		{"ip-like but not ip", "192.168.1.256", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BucketName(tt.bucket)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestObjectKey(t *testing.T) {
	require.NoError(t, ObjectKey("reports/2026/q1.csv"))
	require.NoError(t, ObjectKey("file with spaces.txt"))

	assert.Error(t, ObjectKey(""))
	assert.Error(t, ObjectKey(strings.Repeat("k", 1025)))
	assert.Error(t, ObjectKey("bad\x00key"))
}

func TestSanitizeMetadata(t *testing.T) {
	assert.Nil(t, SanitizeMetadata(nil))

	got := SanitizeMetadata(map[string]string{
		"team":        "data",
		"desc\x07":    "ping\x00pong",
		"multi\nline": "a\tb",
	})
	assert.Equal(t, map[string]string{
		"team":      "data",
		"desc":      "pingpong",
		"multiline": "ab",
	}, got)
}
