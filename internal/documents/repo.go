package documents

import "context"

// Repo defines persistence operations for documents.
//
// Insert is the authoritative duplicate check: it must fail with
// ErrDuplicateContent when a record with the same content hash exists, even
// under concurrent inserts. FindByHash is a fast-path optimization only.
type Repo interface {
	Insert(ctx context.Context, doc Document) (int64, error)
	FindByHash(ctx context.Context, contentHash string) (Document, error)
	Search(ctx context.Context, query string) ([]Summary, error)
	GetByID(ctx context.Context, id int64) (Document, error)
	Delete(ctx context.Context, id int64) (storedPath string, err error)
}
