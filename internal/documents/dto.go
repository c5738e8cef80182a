package documents

import "time"

// UploadedFile reports one accepted file in a batch result.
type UploadedFile struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// SkippedFile reports a duplicate: the incoming filename plus the record it
// duplicated.
type SkippedFile struct {
	Filename           string    `json:"filename"`
	Reason             string    `json:"reason"`
	ExistingFilename   string    `json:"existingFilename"`
	ExistingUploadDate time.Time `json:"existingUploadDate"`
}

// FailedFile reports one rejected file with a human-readable reason.
type FailedFile struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// BatchResult is the three-way partition returned from one ingestion call.
type BatchResult struct {
	BatchID  string         `json:"batchId"`
	Uploaded []UploadedFile `json:"uploaded"`
	Skipped  []SkippedFile  `json:"skipped"`
	Errors   []FailedFile   `json:"errors"`
}

// SummaryResponse is the outward-facing search result row.
type SummaryResponse struct {
	ID               int64     `json:"id"`
	OriginalFilename string    `json:"originalFilename"`
	FileType         string    `json:"fileType"`
	UploadDate       time.Time `json:"uploadDate"`
	Preview          string    `json:"preview"`
}

// DocumentResponse is the outward-facing full document representation.
type DocumentResponse struct {
	ID               int64     `json:"id"`
	OriginalFilename string    `json:"originalFilename"`
	FileType         string    `json:"fileType"`
	SizeBytes        int64     `json:"sizeBytes"`
	UploadDate       time.Time `json:"uploadDate"`
	Content          string    `json:"content"`
}

func toSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		ID:               s.ID,
		OriginalFilename: s.OriginalFilename,
		FileType:         s.FileType,
		UploadDate:       s.UploadDate,
		Preview:          s.Preview,
	}
}

func toDocumentResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:               doc.ID,
		OriginalFilename: doc.OriginalFilename,
		FileType:         doc.FileType,
		SizeBytes:        doc.SizeBytes,
		UploadDate:       doc.UploadDate,
		Content:          doc.Content,
	}
}
