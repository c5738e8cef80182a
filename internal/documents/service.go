package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"time"

	"github.com/google/uuid"

	"docvault-backend/internal/extract"
	"docvault-backend/internal/shared/metrics"
	"docvault-backend/internal/shared/storage/object"
	"docvault-backend/internal/shared/telemetry"
	"docvault-backend/internal/shared/util"
)

// IngestFile is one uploaded file within a batch.
type IngestFile struct {
	Filename string
	Data     []byte
}

// Service contains the ingestion pipeline and document operations.
type Service struct {
	Store          object.ObjectStore
	Repo           Repo
	MaxUploadBytes int64
}

// Ingest processes a batch of uploaded files. Each file is handled
// independently: one file's failure never aborts the batch. The result
// partitions the batch into uploaded, skipped (duplicate) and errors.
func (s *Service) Ingest(ctx context.Context, files []IngestFile) BatchResult {
	start := time.Now()
	result := BatchResult{
		BatchID:  uuid.NewString(),
		Uploaded: []UploadedFile{},
		Skipped:  []SkippedFile{},
		Errors:   []FailedFile{},
	}

	for _, f := range files {
		if f.Filename == "" {
			continue
		}
		s.ingestOne(ctx, f, &result)
	}

	metrics.ObserveIngestDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	telemetry.Info("ingest.batch.complete", map[string]any{
		"batch_id": result.BatchID,
		"uploaded": len(result.Uploaded),
		"skipped":  len(result.Skipped),
		"errors":   len(result.Errors),
	})
	return result
}

func (s *Service) ingestOne(ctx context.Context, f IngestFile, result *BatchResult) {
	fail := func(reason string) {
		metrics.IncIngestFailed()
		result.Errors = append(result.Errors, FailedFile{Filename: f.Filename, Error: reason})
	}
	skip := func(existing Document) {
		metrics.IncIngestSkipped()
		result.Skipped = append(result.Skipped, SkippedFile{
			Filename:           f.Filename,
			Reason:             "duplicate",
			ExistingFilename:   existing.OriginalFilename,
			ExistingUploadDate: existing.UploadDate,
		})
	}

	fileType := util.FileType(f.Filename)
	if !extract.Supported(fileType) {
		fail(ErrUnsupportedType.Error())
		return
	}
	if s.MaxUploadBytes > 0 && int64(len(f.Data)) > s.MaxUploadBytes {
		fail(ErrFileTooLarge.Error())
		return
	}

	text, err := extract.FromBytes(ctx, f.Data, fileType)
	if err != nil {
		telemetry.Warn("ingest.extract.failed", map[string]any{
			"filename": f.Filename,
			"err":      err.Error(),
		})
		fail(fmt.Sprintf("conversion failed: %v", err))
		return
	}

	contentHash := util.ContentHash(text, f.Data)

	// Fast path; the repo's uniqueness constraint is authoritative.
	if existing, err := s.Repo.FindByHash(ctx, contentHash); err == nil {
		skip(existing)
		return
	} else if !errors.Is(err, ErrNotFound) {
		fail(fmt.Sprintf("duplicate check failed: %v", err))
		return
	}

	doc, err := s.commit(ctx, f, fileType, text, contentHash)
	if err != nil {
		if errors.Is(err, ErrDuplicateContent) {
			// Lost the insert race; report against the record that won.
			existing, findErr := s.Repo.FindByHash(ctx, contentHash)
			if findErr == nil {
				skip(existing)
				return
			}
			fail("duplicate check failed")
			return
		}
		fail(err.Error())
		return
	}

	metrics.IncIngestUploaded()
	result.Uploaded = append(result.Uploaded, UploadedFile{
		ID:       doc.ID,
		Filename: doc.OriginalFilename,
		Status:   "success",
	})
}

// commit writes the blob and inserts the record as one logical unit. When
// the insert fails the blob is removed again, so a record never exists
// without its file and vice versa.
func (s *Service) commit(ctx context.Context, f IngestFile, fileType, text, contentHash string) (Document, error) {
	storedPath, size, _, err := s.saveBlob(ctx, f)
	if err != nil {
		return Document{}, fmt.Errorf("store file: %v", err)
	}

	doc := Document{
		OriginalFilename: f.Filename,
		StoredPath:       storedPath,
		FileType:         fileType,
		Content:          text,
		ContentHash:      contentHash,
		SizeBytes:        size,
		UploadDate:       time.Now().UTC(),
	}

	id, err := s.Repo.Insert(ctx, doc)
	if err != nil {
		if delErr := s.Store.Delete(ctx, storedPath); delErr != nil {
			telemetry.Error("ingest.rollback.failed", map[string]any{
				"stored_path": storedPath,
				"err":         delErr.Error(),
			})
		}
		if errors.Is(err, ErrDuplicateContent) {
			return Document{}, err
		}
		return Document{}, fmt.Errorf("insert record: %v", err)
	}

	doc.ID = id
	return doc, nil
}

// saveBlob writes the upload, retrying a failed write once before giving up.
func (s *Service) saveBlob(ctx context.Context, f IngestFile) (string, int64, string, error) {
	key, size, mimeType, err := s.Store.Save(ctx, f.Filename, bytes.NewReader(f.Data))
	if err == nil {
		return key, size, mimeType, nil
	}
	telemetry.Warn("ingest.store.retry", map[string]any{
		"filename": f.Filename,
		"err":      err.Error(),
	})
	return s.Store.Save(ctx, f.Filename, bytes.NewReader(f.Data))
}

// Search returns document summaries matching the query, newest-first.
// An empty or whitespace-only query returns everything.
func (s *Service) Search(ctx context.Context, query string) ([]Summary, error) {
	return s.Repo.Search(ctx, strings.TrimSpace(query))
}

// Get returns the full document record.
func (s *Service) Get(ctx context.Context, id int64) (Document, error) {
	return s.Repo.GetByID(ctx, id)
}

// Download returns the document record and a reader over its original bytes.
// The caller must close the reader.
func (s *Service) Download(ctx context.Context, id int64) (Document, io.ReadCloser, error) {
	doc, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Document{}, nil, err
	}
	rc, err := s.Store.Open(ctx, doc.StoredPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Document{}, nil, ErrNotFound
		}
		return Document{}, nil, fmt.Errorf("open blob: %v", err)
	}
	return doc, rc, nil
}

// Delete removes the record and its blob. The record goes first so a
// concurrent fetch resolves to NotFound rather than a half-deleted document;
// an already-missing blob is tolerated.
func (s *Service) Delete(ctx context.Context, id int64) error {
	storedPath, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Store.Delete(ctx, storedPath); err != nil {
		telemetry.Warn("documents.delete.blob", map[string]any{
			"document_id": id,
			"stored_path": storedPath,
			"err":         err.Error(),
		})
	}
	return nil
}
