// Package extract turns uploaded documents into plain text for the AI
// pipeline. Supported formats: PDF, DOCX, XLSX.
package extract

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

var ErrUnsupportedFileType = errors.New("unsupported file type")

// Text extracts plain text from the file at path, dispatching on extension.
func Text(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return pdfText(path)
	case ".docx":
		return docxText(path)
	case ".xlsx":
		return xlsxText(path)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFileType, filepath.Ext(path))
	}
}

// Extractor adapts Text to the interface the ask service consumes.
type Extractor struct{}

func (Extractor) Extract(path string) (string, error) {
	return Text(path)
}
