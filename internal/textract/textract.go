package textract

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

const (
	MediaTypePDF   = "application/pdf"
	MediaTypeDOCX  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	MediaTypePlain = "text/plain"
)

// File is one uploaded document: raw bytes plus a declared media type.
type File struct {
	Name      string
	MediaType string
	Data      []byte
}

// ExtractionError reports a decode failure for a recognized media type. It is
// fatal to that file's parse only, never to a whole batch.
type ExtractionError struct {
	File string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.File, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract converts the file into plain text. Unrecognized media types yield
// empty text without an error; callers decide whether that is fatal.
func Extract(file File) (string, error) {
	switch file.MediaType {
	case MediaTypePlain:
		return string(file.Data), nil
	case MediaTypePDF:
		text, err := extractPDF(file.Data)
		if err != nil {
			return "", &ExtractionError{File: file.Name, Err: err}
		}
		return text, nil
	case MediaTypeDOCX:
		text, err := extractDOCX(file.Data)
		if err != nil {
			return "", &ExtractionError{File: file.Name, Err: err}
		}
		return text, nil
	default:
		return "", nil
	}
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var builder strings.Builder
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document.
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(text)
	}
	return builder.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

// MediaTypeForName maps a file name to a supported media type by extension.
// Unknown extensions return an empty string.
func MediaTypeForName(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return MediaTypePDF
	case ".docx":
		return MediaTypeDOCX
	case ".txt":
		return MediaTypePlain
	default:
		return ""
	}
}

// LoadDir reads every supported file in the directory, non-recursively, in
// lexical order. Files with unknown extensions are skipped.
func LoadDir(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %q: %w", dir, err)
	}

	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !entry.Type().IsRegular() && entry.Type()&fs.ModeSymlink == 0 {
			continue
		}

		mediaType := MediaTypeForName(entry.Name())
		if mediaType == "" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", entry.Name(), err)
		}

		files = append(files, File{
			Name:      entry.Name(),
			MediaType: mediaType,
			Data:      data,
		})
	}

	return files, nil
}
