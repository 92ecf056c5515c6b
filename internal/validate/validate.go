// Package validate provides functions to validate spreadsheet uploads.
package validate

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// FilenameSpreadsheet checks that the filename has a spreadsheet extension.
// The filename is advisory (the part header can claim anything); decoding is
// what actually proves the content, so this only rejects obvious mistakes.
func FilenameSpreadsheet(fn string) error {
	switch strings.ToLower(filepath.Ext(fn)) {
	case ".xlsx", ".xls":
		return nil
	}
	return errors.New("only .xlsx/.xls files allowed")
}

// SizeOK checks the upload size against the configured cap.
func SizeOK(n, max int64) error {
	if n <= 0 {
		return errors.New("empty file")
	}
	if n > max {
		return fmt.Errorf("file exceeds %d bytes", max)
	}
	return nil
}
