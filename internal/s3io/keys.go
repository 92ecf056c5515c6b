package s3io

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ContentTypeXLSX is the media type of generated workbooks.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportKey constructs the S3 key for a generated export file.
func ExportKey(userID, exportID string) string {
	return fmt.Sprintf("user/%s/exports/%s.xlsx", userID, exportID)
}

// ParseExportKey extracts userID and exportID from an export key path.
func ParseExportKey(key string) (userID, exportID string, ok bool) {
	if strings.ToLower(filepath.Ext(key)) != ".xlsx" {
		return "", "", false
	}
	parts := strings.Split(key, "/")
	if len(parts) != 4 || parts[0] != "user" || parts[2] != "exports" {
		return "", "", false
	}
	return parts[1], strings.TrimSuffix(parts[3], ".xlsx"), true
}
