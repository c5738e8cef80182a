package documents

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Insert adds a new document and returns its assigned id. The UNIQUE index
// on content_hash makes this the authoritative duplicate check.
func (r *PGRepo) Insert(ctx context.Context, doc Document) (int64, error) {
	const query = `
INSERT INTO documents (
    original_filename,
    stored_path,
    file_type,
    content,
    content_hash,
    size_bytes,
    upload_date
) VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`

	var id int64
	err := r.DB.QueryRowContext(
		ctx,
		query,
		doc.OriginalFilename,
		doc.StoredPath,
		doc.FileType,
		doc.Content,
		doc.ContentHash,
		doc.SizeBytes,
		doc.UploadDate,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return 0, ErrDuplicateContent
		}
		return 0, err
	}
	return id, nil
}

// FindByHash returns the document with the given content fingerprint.
func (r *PGRepo) FindByHash(ctx context.Context, contentHash string) (Document, error) {
	const query = `
SELECT id, original_filename, stored_path, file_type, content, content_hash, size_bytes, upload_date
FROM documents
WHERE content_hash = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, contentHash))
}

// GetByID fetches a document by id.
func (r *PGRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	const query = `
SELECT id, original_filename, stored_path, file_type, content, content_hash, size_bytes, upload_date
FROM documents
WHERE id = $1
LIMIT 1`
	return r.scanOne(r.DB.QueryRowContext(ctx, query, id))
}

// Search returns summaries newest-first. An empty query matches everything;
// otherwise filename and content are matched as case-insensitive substrings.
func (r *PGRepo) Search(ctx context.Context, query string) ([]Summary, error) {
	const base = `
SELECT id, original_filename, file_type, upload_date, substr(content, 1, $1) AS preview
FROM documents`
	const order = `
ORDER BY upload_date DESC, id DESC`

	var (
		rows *sql.Rows
		err  error
	)
	if strings.TrimSpace(query) == "" {
		rows, err = r.DB.QueryContext(ctx, base+order, PreviewLength)
	} else {
		pattern := "%" + query + "%"
		rows, err = r.DB.QueryContext(
			ctx,
			base+`
WHERE original_filename ILIKE $2 OR content ILIKE $2`+order,
			PreviewLength,
			pattern,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.OriginalFilename, &s.FileType, &s.UploadDate, &s.Preview); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a document and returns its stored path so the caller can
// remove the blob.
func (r *PGRepo) Delete(ctx context.Context, id int64) (string, error) {
	const query = `
DELETE FROM documents
WHERE id = $1
RETURNING stored_path`

	var storedPath string
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&storedPath)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return storedPath, nil
}

func (r *PGRepo) scanOne(row *sql.Row) (Document, error) {
	var doc Document
	err := row.Scan(
		&doc.ID,
		&doc.OriginalFilename,
		&doc.StoredPath,
		&doc.FileType,
		&doc.Content,
		&doc.ContentHash,
		&doc.SizeBytes,
		&doc.UploadDate,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
