package s3io

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExportKeyRoundTrip(t *testing.T) {
	key := ExportKey("user-1", "01JABCDEF")
	assert.Equal(t, "user/user-1/exports/01JABCDEF.xlsx", key)

	userID, exportID, ok := ParseExportKey(key)
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "01JABCDEF", exportID)
}

func TestParseExportKeyRejects(t *testing.T) {
	for _, key := range []string{
		"",
		"user/user-1/exports/01J.csv",
		"user/user-1/01J.xlsx",
		"other/user-1/exports/01J.xlsx",
		"user/user-1/uploads/01J.xlsx",
	} {
		_, _, ok := ParseExportKey(key)
		assert.False(t, ok, key)
	}
}
