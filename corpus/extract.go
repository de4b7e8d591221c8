// Package corpus builds retrieval-context rows from reference documents.
package corpus

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Document is the extracted plain text of one source file.
type Document struct {
	Path string
	Text string
}

// ExtractDir walks root recursively and extracts plain text from every
// PDF and DOCX file found. Files that fail extraction are logged and
// skipped; they never abort the scan.
func ExtractDir(root string) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		var (
			text string
			xerr error
		)
		switch strings.ToLower(filepath.Ext(path)) {
		case ".pdf":
			text, xerr = extractPDF(path)
		case ".docx":
			text, xerr = extractDOCX(path)
		default:
			return nil
		}
		if xerr != nil {
			slog.Warn("skipping document", "path", path, "err", xerr)
			return nil
		}

		docs = append(docs, Document{Path: path, Text: text})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	return docs, nil
}

func extractPDF(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// docxTextPattern matches the text runs of word/document.xml.
var docxTextPattern = regexp.MustCompile(`<w:t[^>]*>([^<]*)</w:t>`)

func extractDOCX(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return extractDOCXBytes(data)
}

// extractDOCXBytes pulls the text runs out of the DOCX zip container.
func extractDOCXBytes(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	for _, file := range zr.File {
		if file.Name != "word/document.xml" {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return "", err
		}
		xmlData, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", err
		}

		var parts []string
		for _, match := range docxTextPattern.FindAllStringSubmatch(string(xmlData), -1) {
			if len(match) > 1 && match[1] != "" {
				parts = append(parts, match[1])
			}
		}
		return strings.Join(parts, " "), nil
	}

	return "", fmt.Errorf("document.xml not found in DOCX")
}
