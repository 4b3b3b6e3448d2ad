package files

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu    sync.RWMutex
	data  map[string]FileRecord
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		data: make(map[string]FileRecord),
	}
}

// ListByOwner returns an owner's records newest first.
func (r *MemoryRepo) ListByOwner(ctx context.Context, ownerID string, page PageRequest) (Page, error) {
	return r.filter(ctx, ownerID, page, func(FileRecord) bool { return true })
}

// Search returns an owner's records matching both substring filters, newest first.
func (r *MemoryRepo) Search(ctx context.Context, ownerID, category, name string, page PageRequest) (Page, error) {
	category = strings.ToLower(category)
	name = strings.ToLower(name)
	return r.filter(ctx, ownerID, page, func(rec FileRecord) bool {
		return strings.Contains(strings.ToLower(rec.ContentType), category) &&
			strings.Contains(strings.ToLower(rec.Name), name)
	})
}

// GetByID returns a record owned by ownerID.
func (r *MemoryRepo) GetByID(ctx context.Context, id, ownerID string) (FileRecord, error) {
	if err := ctx.Err(); err != nil {
		return FileRecord{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.data[id]
	if !ok || rec.OwnerID != ownerID {
		return FileRecord{}, ErrRecordNotFound
	}
	return rec, nil
}

// SumSizeByOwner totals the byte size of an owner's records.
func (r *MemoryRepo) SumSizeByOwner(ctx context.Context, ownerID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total int64
	for _, rec := range r.data {
		if rec.OwnerID == ownerID {
			total += rec.ByteSize
		}
	}
	return total, nil
}

// Save inserts a record or updates name, description and updated_at of an existing one.
func (r *MemoryRepo) Save(ctx context.Context, rec FileRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.data[rec.ID]
	if !ok {
		r.data[rec.ID] = rec
		r.order = append(r.order, rec.ID)
		return nil
	}
	existing.Name = rec.Name
	existing.Description = rec.Description
	existing.UpdatedAt = rec.UpdatedAt
	r.data[rec.ID] = existing
	return nil
}

// Delete removes a record. Deleting a missing id is a no-op.
func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return nil
	}
	delete(r.data, id)
	for i, v := range r.order {
		if v == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

func (r *MemoryRepo) filter(ctx context.Context, ownerID string, page PageRequest, match func(FileRecord) bool) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}

	r.mu.RLock()
	var matched []FileRecord
	for i := len(r.order) - 1; i >= 0; i-- {
		rec := r.data[r.order[i]]
		if rec.OwnerID == ownerID && match(rec) {
			matched = append(matched, rec)
		}
	}
	r.mu.RUnlock()

	// Walking insertion order backwards keeps the latest insert first on equal timestamps.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	out := Page{Records: []FileRecord{}, Total: int64(len(matched))}
	offset := page.Offset()
	if offset < 0 || offset >= len(matched) || page.Size <= 0 {
		return out, nil
	}
	end := offset + page.Size
	if end > len(matched) {
		end = len(matched)
	}
	out.Records = append(out.Records, matched[offset:end]...)
	return out, nil
}
