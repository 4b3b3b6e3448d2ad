package files

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

const fileColumns = `id, owner_id, name, description, url, content_type, byte_size, category, storage_key, created_at, updated_at`

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListByOwner lists an owner's records newest first.
func (r *PGRepo) ListByOwner(ctx context.Context, ownerID string, page PageRequest) (Page, error) {
	return r.page(ctx, "WHERE owner_id = $1", []any{ownerID}, page)
}

// Search lists an owner's records whose content type and name contain the filters.
func (r *PGRepo) Search(ctx context.Context, ownerID, category, name string, page PageRequest) (Page, error) {
	where, args := buildSearchWhere(ownerID, category, name)
	return r.page(ctx, where, args, page)
}

// GetByID fetches a record by id for an owner.
func (r *PGRepo) GetByID(ctx context.Context, id, ownerID string) (FileRecord, error) {
	query := fmt.Sprintf(`
SELECT %s
FROM files
WHERE id = $1 AND owner_id = $2
LIMIT 1`, fileColumns)

	rec, err := scanRecord(r.DB.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return FileRecord{}, ErrRecordNotFound
		}
		return FileRecord{}, err
	}
	return rec, nil
}

// SumSizeByOwner totals byte_size for an owner; an owner with no files sums to 0.
func (r *PGRepo) SumSizeByOwner(ctx context.Context, ownerID string) (int64, error) {
	const query = `SELECT COALESCE(SUM(byte_size), 0) FROM files WHERE owner_id = $1`
	var total int64
	if err := r.DB.QueryRowContext(ctx, query, ownerID).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// Save inserts a record. On id conflict only the mutable columns are updated.
func (r *PGRepo) Save(ctx context.Context, rec FileRecord) error {
	const query = `
INSERT INTO files (
    id,
    owner_id,
    name,
    description,
    url,
    content_type,
    byte_size,
    category,
    storage_key,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    description = EXCLUDED.description,
    updated_at = EXCLUDED.updated_at`

	var description sql.NullString
	if rec.Description != "" {
		description = sql.NullString{String: rec.Description, Valid: true}
	}

	_, err := r.DB.ExecContext(
		ctx,
		query,
		rec.ID,
		rec.OwnerID,
		rec.Name,
		description,
		rec.URL,
		rec.ContentType,
		rec.ByteSize,
		string(rec.Category),
		rec.StorageKey,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// Delete removes a record by id.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM files WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id)
	return err
}

func (r *PGRepo) page(ctx context.Context, where string, args []any, page PageRequest) (Page, error) {
	argNum := len(args) + 1
	dataQuery := fmt.Sprintf(`
SELECT %s
FROM files
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d OFFSET $%d`, fileColumns, where, argNum, argNum+1)

	dataArgs := append(append([]any{}, args...), page.Size, page.Offset())
	rows, err := r.DB.QueryContext(ctx, dataQuery, dataArgs...)
	if err != nil {
		return Page{}, fmt.Errorf("query files: %w", err)
	}
	defer rows.Close()

	out := Page{Records: []FileRecord{}}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return Page{}, fmt.Errorf("scan file: %w", err)
		}
		out.Records = append(out.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return Page{}, fmt.Errorf("iterate files: %w", err)
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM files %s`, where)
	if err := r.DB.QueryRowContext(ctx, countQuery, args...).Scan(&out.Total); err != nil {
		return Page{}, fmt.Errorf("count files: %w", err)
	}
	return out, nil
}

// buildSearchWhere scopes to the owner and adds an ILIKE condition per non-empty filter.
func buildSearchWhere(ownerID, category, name string) (string, []any) {
	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}

	if category != "" {
		args = append(args, "%"+escapeLike(category)+"%")
		conditions = append(conditions, fmt.Sprintf("content_type ILIKE $%d", len(args)))
	}
	if name != "" {
		args = append(args, "%"+escapeLike(name)+"%")
		conditions = append(conditions, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (FileRecord, error) {
	var rec FileRecord
	var description sql.NullString
	var category string
	if err := row.Scan(
		&rec.ID,
		&rec.OwnerID,
		&rec.Name,
		&description,
		&rec.URL,
		&rec.ContentType,
		&rec.ByteSize,
		&category,
		&rec.StorageKey,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return FileRecord{}, err
	}
	if description.Valid {
		rec.Description = description.String
	}
	rec.Category = Category(category)
	return rec, nil
}
