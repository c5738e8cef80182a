package documents

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
)

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoInsertReturnsAssignedID(t *testing.T) {
	repo, mock := newMockRepo(t)

	doc := Document{
		OriginalFilename: "report.pdf",
		StoredPath:       "abc_report.pdf",
		FileType:         "pdf",
		Content:          "Q3 revenue",
		ContentHash:      "deadbeef",
		SizeBytes:        1024,
		UploadDate:       time.Now().UTC(),
	}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(
			doc.OriginalFilename,
			doc.StoredPath,
			doc.FileType,
			doc.Content,
			doc.ContentHash,
			doc.SizeBytes,
			doc.UploadDate,
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	id, err := repo.Insert(context.Background(), doc)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if id != 7 {
		t.Fatalf("expected id 7, got %d", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoInsertMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("INSERT INTO documents").
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation})

	_, err := repo.Insert(context.Background(), Document{ContentHash: "deadbeef"})
	if !errors.Is(err, ErrDuplicateContent) {
		t.Fatalf("expected ErrDuplicateContent, got %v", err)
	}
}

func TestPGRepoFindByHashNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs("deadbeef").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByHash(context.Background(), "deadbeef")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoSearchEmptyQueryListsAll(t *testing.T) {
	repo, mock := newMockRepo(t)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "original_filename", "file_type", "upload_date", "preview"}).
		AddRow(int64(2), "b.pdf", "pdf", now, "beta").
		AddRow(int64(1), "a.pdf", "pdf", now.Add(-time.Hour), "alpha")

	mock.ExpectQuery("SELECT (.+) FROM documents\\s+ORDER BY upload_date DESC").
		WithArgs(PreviewLength).
		WillReturnRows(rows)

	out, err := repo.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out) != 2 || out[0].ID != 2 || out[1].ID != 1 {
		t.Fatalf("unexpected results: %+v", out)
	}
	if out[0].Preview != "beta" {
		t.Fatalf("unexpected preview: %q", out[0].Preview)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSearchAppliesSubstringPattern(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "original_filename", "file_type", "upload_date", "preview"}).
		AddRow(int64(3), "plan.docx", "docx", time.Now().UTC(), "gamma xyz123 plan")

	mock.ExpectQuery("SELECT (.+) FROM documents\\s+WHERE original_filename ILIKE").
		WithArgs(PreviewLength, "%xyz123%").
		WillReturnRows(rows)

	out, err := repo.Search(context.Background(), "xyz123")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(out) != 1 || out[0].ID != 3 {
		t.Fatalf("unexpected results: %+v", out)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteReturnsStoredPath(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("DELETE FROM documents").
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"stored_path"}).AddRow("abc_report.pdf"))

	path, err := repo.Delete(context.Background(), 5)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if path != "abc_report.pdf" {
		t.Fatalf("unexpected path: %q", path)
	}
}

func TestPGRepoDeleteNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("DELETE FROM documents").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Delete(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
