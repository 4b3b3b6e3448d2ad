package files

import "context"

// Quota reports how much of an owner's storage allowance is left.
type Quota struct {
	Repo    Repo
	Ceiling int64
}

// Remaining returns Ceiling minus the owner's stored bytes. The result is negative
// once an owner has gone over the allowance; uploads do not enforce it.
func (q Quota) Remaining(ctx context.Context, ownerID string) (int64, error) {
	used, err := q.Repo.SumSizeByOwner(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	return q.Ceiling - used, nil
}
