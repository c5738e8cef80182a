package documents

import "time"

// PreviewLength bounds the content prefix returned with search results.
const PreviewLength = 200

// Document represents one accepted upload: catalog metadata, the extracted
// text used for search, and the content fingerprint used for dedup. The
// record owns its blob: deleting the record deletes the stored file.
type Document struct {
	ID               int64
	OriginalFilename string
	StoredPath       string
	FileType         string
	Content          string
	ContentHash      string
	SizeBytes        int64
	UploadDate       time.Time
}

// Summary is the search-result projection of a document.
type Summary struct {
	ID               int64
	OriginalFilename string
	FileType         string
	UploadDate       time.Time
	Preview          string
}

func preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewLength {
		return content
	}
	return string(runes[:PreviewLength])
}
