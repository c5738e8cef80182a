package util

import "testing"

func TestContentHashIsStable(t *testing.T) {
	a := ContentHash("Q3 revenue", nil)
	b := ContentHash("Q3 revenue", []byte("different raw bytes"))
	if a != b {
		t.Fatalf("hash over identical text must ignore raw bytes: %s != %s", a, b)
	}
	if len(a) != 64 {
		t.Fatalf("expected 64 hex chars, got %d", len(a))
	}
}

func TestContentHashDiffersByText(t *testing.T) {
	if ContentHash("alpha", nil) == ContentHash("beta", nil) {
		t.Fatal("distinct texts must not collide")
	}
}

func TestContentHashEmptyTextFallsBackToRawBytes(t *testing.T) {
	a := ContentHash("", []byte{0x25, 0x50, 0x44, 0x46})
	b := ContentHash("", []byte{0xd0, 0xcf, 0x11, 0xe0})
	if a == b {
		t.Fatal("distinct no-text files must not be treated as duplicates")
	}
	if a != ContentHash("", []byte{0x25, 0x50, 0x44, 0x46}) {
		t.Fatal("raw-byte fallback must be deterministic")
	}
}

func TestFileType(t *testing.T) {
	cases := map[string]string{
		"report.PDF":     "pdf",
		"deck.pptx":      "pptx",
		"archive.tar.gz": "gz",
		"noext":          "",
	}
	for name, want := range cases {
		if got := FileType(name); got != want {
			t.Fatalf("FileType(%q) = %q, want %q", name, got, want)
		}
	}
}
