package files

import "context"

// Repo is the metadata index for uploaded files. Every read is scoped to an owner.
type Repo interface {
	ListByOwner(ctx context.Context, ownerID string, page PageRequest) (Page, error)
	// Search matches records whose content type contains category and whose name
	// contains name, case-insensitively. An empty filter matches everything.
	Search(ctx context.Context, ownerID, category, name string, page PageRequest) (Page, error)
	GetByID(ctx context.Context, id, ownerID string) (FileRecord, error)
	SumSizeByOwner(ctx context.Context, ownerID string) (int64, error)
	// Save inserts the record or, when the id exists, updates its mutable fields.
	Save(ctx context.Context, rec FileRecord) error
	Delete(ctx context.Context, id string) error
}
