package documents

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo used when no database is
// configured (dev) and in tests. The mutex serializes check-then-insert so
// the content-hash uniqueness invariant holds under concurrent ingestion.
type MemoryRepo struct {
	mu     sync.RWMutex
	docs   map[int64]Document
	byHash map[string]int64
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:   make(map[int64]Document),
		byHash: make(map[string]int64),
	}
}

// Insert stores a new document, assigning a monotonically increasing id.
// Deleted ids are never reused.
func (r *MemoryRepo) Insert(ctx context.Context, doc Document) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byHash[doc.ContentHash]; exists {
		return 0, ErrDuplicateContent
	}
	r.nextID++
	doc.ID = r.nextID
	r.docs[doc.ID] = doc
	r.byHash[doc.ContentHash] = doc.ID
	return doc.ID, nil
}

// FindByHash returns the document with the given content fingerprint.
func (r *MemoryRepo) FindByHash(ctx context.Context, contentHash string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byHash[contentHash]
	if !ok {
		return Document{}, ErrNotFound
	}
	return r.docs[id], nil
}

// GetByID returns a document by id.
func (r *MemoryRepo) GetByID(ctx context.Context, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Search returns summaries newest-first, filtered by case-insensitive
// substring match on filename or content when query is non-empty.
func (r *MemoryRepo) Search(ctx context.Context, query string) ([]Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	needle := strings.ToLower(query)
	if strings.TrimSpace(needle) == "" {
		needle = ""
	}

	r.mu.RLock()
	matched := make([]Document, 0, len(r.docs))
	for _, doc := range r.docs {
		if needle == "" ||
			strings.Contains(strings.ToLower(doc.OriginalFilename), needle) ||
			strings.Contains(strings.ToLower(doc.Content), needle) {
			matched = append(matched, doc)
		}
	}
	r.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].UploadDate.Equal(matched[j].UploadDate) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].UploadDate.After(matched[j].UploadDate)
	})

	out := make([]Summary, 0, len(matched))
	for _, doc := range matched {
		out = append(out, Summary{
			ID:               doc.ID,
			OriginalFilename: doc.OriginalFilename,
			FileType:         doc.FileType,
			UploadDate:       doc.UploadDate,
			Preview:          preview(doc.Content),
		})
	}
	return out, nil
}

// Delete removes a document and returns its stored path.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	doc, ok := r.docs[id]
	if !ok {
		return "", ErrNotFound
	}
	delete(r.docs, id)
	delete(r.byHash, doc.ContentHash)
	return doc.StoredPath, nil
}

var _ Repo = (*MemoryRepo)(nil)
