package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"strings"
	"testing"
)

func buildZip(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create zip entry %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("write zip entry %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

func TestFromBytesDocx(t *testing.T) {
	data := buildZip(t, map[string]string{
		"word/document.xml": `<w:document><w:body><w:p><w:r><w:t>Q3 revenue</w:t></w:r></w:p><w:p><w:r><w:t>up 12%</w:t></w:r></w:p></w:body></w:document>`,
	})

	text, err := FromBytes(context.Background(), data, "docx")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !strings.Contains(text, "Q3 revenue") || !strings.Contains(text, "up 12%") {
		t.Fatalf("unexpected text: %q", text)
	}
	if !strings.Contains(text, "\n") {
		t.Fatalf("expected paragraph break, got %q", text)
	}
}

func TestFromBytesXlsx(t *testing.T) {
	data := buildZip(t, map[string]string{
		"xl/sharedStrings.xml": `<sst><si><t>Revenue</t></si><si><t>104500</t></si></sst>`,
		"xl/workbook.xml":      `<workbook/>`,
	})

	text, err := FromBytes(context.Background(), data, "xlsx")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !strings.Contains(text, "Revenue") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestFromBytesXlsxWithoutSharedStrings(t *testing.T) {
	data := buildZip(t, map[string]string{
		"xl/workbook.xml": `<workbook/>`,
	})

	text, err := FromBytes(context.Background(), data, "xlsx")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if text != "" {
		t.Fatalf("expected empty text for numeric-only workbook, got %q", text)
	}
}

func TestFromBytesPptx(t *testing.T) {
	data := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": `<p:sld><a:t>Roadmap</a:t></p:sld>`,
		"ppt/slides/slide2.xml": `<p:sld><a:t>Milestones</a:t></p:sld>`,
	})

	text, err := FromBytes(context.Background(), data, "pptx")
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !strings.Contains(text, "Roadmap") || !strings.Contains(text, "Milestones") {
		t.Fatalf("unexpected text: %q", text)
	}
}

func TestFromBytesLegacyFormatsYieldNoText(t *testing.T) {
	for _, fileType := range []string{"doc", "xls", "ppt"} {
		text, err := FromBytes(context.Background(), []byte{0xd0, 0xcf, 0x11, 0xe0}, fileType)
		if err != nil {
			t.Fatalf("FromBytes(%s): %v", fileType, err)
		}
		if text != "" {
			t.Fatalf("expected empty text for %s, got %q", fileType, text)
		}
	}
}

func TestFromBytesUnsupportedType(t *testing.T) {
	_, err := FromBytes(context.Background(), []byte("plain"), "txt")
	if err == nil {
		t.Fatal("expected error for unsupported type")
	}
	if !strings.Contains(err.Error(), "unsupported file type") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFromBytesCorruptDocx(t *testing.T) {
	if _, err := FromBytes(context.Background(), []byte("not a zip"), "docx"); err == nil {
		t.Fatal("expected error for corrupt docx")
	}
}

func TestSupported(t *testing.T) {
	for _, fileType := range []string{"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx"} {
		if !Supported(fileType) {
			t.Fatalf("expected %s to be supported", fileType)
		}
	}
	for _, fileType := range []string{"txt", "exe", ""} {
		if Supported(fileType) {
			t.Fatalf("expected %s to be rejected", fileType)
		}
	}
}
