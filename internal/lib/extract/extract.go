// Package extract pulls plain text out of uploaded study documents.
//
// Supported formats: pdf, pptx, docx. PDF extraction uses the
// ledongthuc/pdf reader; pptx and docx are zip archives of XML parts
// read with archive/zip and encoding/xml.
package extract

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// SupportedTypes lists the file extensions that can be processed,
// without the leading dot.
var SupportedTypes = []string{"pdf", "pptx", "docx"}

// ValidateFileType extracts the extension from a filename and checks
// it against the supported set. The returned type is lowercased and
// has no leading dot.
func ValidateFileType(filename string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	for _, t := range SupportedTypes {
		if ext == t {
			return ext, nil
		}
	}
	return "", fmt.Errorf("unsupported file type: %q (supported types: %s)", ext, strings.Join(SupportedTypes, ", "))
}

// Text extracts plain text from file content based on its type.
func Text(data []byte, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "pdf":
		return fromPDF(data)
	case "pptx":
		return fromPPTX(data)
	case "docx":
		return fromDOCX(data)
	default:
		return "", fmt.Errorf("unsupported file type: %q", fileType)
	}
}

func fromPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("reading pdf: %w", err)
	}

	var parts []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single broken page should not sink the document.
			continue
		}
		if strings.TrimSpace(text) != "" {
			parts = append(parts, text)
		}
	}

	return strings.Join(parts, "\n\n"), nil
}
