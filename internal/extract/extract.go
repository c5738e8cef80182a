package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Func extracts plain text from raw document bytes. Implementations may
// return an empty string for formats that carry no extractable text.
type Func func(data []byte) (string, error)

// registry maps each normalized file type to its extractor. Legacy binary
// office formats (doc/xls/ppt) are accepted but yield no text; duplicate
// detection then falls back to fingerprinting the raw bytes.
var registry = map[string]Func{
	"pdf":  extractPDF,
	"docx": extractDOCX,
	"xlsx": extractXLSX,
	"pptx": extractPPTX,
	"doc":  extractNone,
	"xls":  extractNone,
	"ppt":  extractNone,
}

// Supported reports whether fileType has a registered extractor.
func Supported(fileType string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(fileType))]
	return ok
}

// SupportedTypes returns the allow-listed file types, sorted.
func SupportedTypes() []string {
	types := make([]string, 0, len(registry))
	for t := range registry {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// FromBytes extracts text from an in-memory payload.
func FromBytes(ctx context.Context, data []byte, fileType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fn, ok := registry[strings.ToLower(strings.TrimSpace(fileType))]
	if !ok {
		return "", fmt.Errorf("unsupported file type: %s", fileType)
	}
	text, err := fn(data)
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", fileType, err)
	}
	return text, nil
}

func extractNone(data []byte) (string, error) {
	return "", nil
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return strings.TrimSpace(buf.String()), nil
}

func extractDOCX(data []byte) (string, error) {
	raw, err := readZipPart(data, func(name string) bool {
		return name == "word/document.xml"
	})
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", errors.New("document.xml not found")
	}
	return stripXML(raw[0]), nil
}

func extractXLSX(data []byte) (string, error) {
	raw, err := readZipPart(data, func(name string) bool {
		return name == "xl/sharedStrings.xml"
	})
	if err != nil {
		return "", err
	}
	// Workbooks without string cells have no sharedStrings part.
	if len(raw) == 0 {
		return "", nil
	}
	return stripXML(raw[0]), nil
}

func extractPPTX(data []byte) (string, error) {
	raw, err := readZipPart(data, func(name string) bool {
		return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
	})
	if err != nil {
		return "", err
	}
	if len(raw) == 0 {
		return "", errors.New("no slides found")
	}
	var parts []string
	for _, slide := range raw {
		if text := stripXML(slide); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

func readZipPart(data []byte, match func(name string) bool) ([]string, error) {
	if len(data) == 0 {
		return nil, errors.New("empty payload")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return nil, err
	}

	var out []string
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if !match(name) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, string(raw))
	}
	return out, nil
}

func stripXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" || t.Name.Local == "si" {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
