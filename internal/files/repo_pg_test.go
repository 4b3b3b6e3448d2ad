package files

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var recordColumns = []string{"id", "owner_id", "name", "description", "url", "content_type", "byte_size", "category", "storage_key", "created_at", "updated_at"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoSaveUpsertsMutableColumns(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	rec := FileRecord{
		ID:          "fid-1",
		OwnerID:     "owner-1",
		Name:        "report",
		URL:         "https://bucket.s3.us-east-1.amazonaws.com/fid-1.pdf",
		ContentType: "application/pdf",
		ByteSize:    42,
		Category:    CategoryApplication,
		StorageKey:  "fid-1.pdf",
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(`INSERT INTO files .* ON CONFLICT \(id\) DO UPDATE\s+SET name = EXCLUDED.name,\s+description = EXCLUDED.description,\s+updated_at = EXCLUDED.updated_at`).
		WithArgs(
			rec.ID,
			rec.OwnerID,
			rec.Name,
			nil, // empty description stored as NULL
			rec.URL,
			rec.ContentType,
			rec.ByteSize,
			"application",
			rec.StorageKey,
			rec.CreatedAt,
			rec.UpdatedAt,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDMissingIsRecordNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`FROM files\s+WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("fid-1", "owner-1").
		WillReturnError(sql.ErrNoRows)

	if _, err := repo.GetByID(context.Background(), "fid-1", "owner-1"); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetByIDScansNullDescription(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	rows := sqlmock.NewRows(recordColumns).
		AddRow("fid-1", "owner-1", "report", nil, "https://x/fid-1.pdf", "application/pdf", int64(42), "application", "fid-1.pdf", created, created)
	mock.ExpectQuery(`FROM files\s+WHERE id = \$1 AND owner_id = \$2`).
		WithArgs("fid-1", "owner-1").
		WillReturnRows(rows)

	rec, err := repo.GetByID(context.Background(), "fid-1", "owner-1")
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if rec.Description != "" || rec.Category != CategoryApplication || rec.ByteSize != 42 || rec.StorageKey != "fid-1.pdf" {
		t.Fatalf("unexpected record %+v", rec)
	}
}

func TestPGRepoSumSizeByOwner(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(byte_size\), 0\) FROM files WHERE owner_id = \$1`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(int64(0)))

	total, err := repo.SumSizeByOwner(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("SumSizeByOwner: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected 0, got %d", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoListByOwnerPagesNewestFirst(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	mock.ExpectQuery(`FROM files\s+WHERE owner_id = \$1\s+ORDER BY created_at DESC, id DESC\s+LIMIT \$2 OFFSET \$3`).
		WithArgs("owner-1", 2, 4).
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("fid-2", "owner-1", "b", "desc", "https://x/fid-2.txt", "text/plain", int64(2), "text", "fid-2.txt", now, now))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files WHERE owner_id = \$1`).
		WithArgs("owner-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(5)))

	page, err := repo.ListByOwner(context.Background(), "owner-1", PageRequest{Number: 2, Size: 2})
	if err != nil {
		t.Fatalf("ListByOwner: %v", err)
	}
	if page.Total != 5 || len(page.Records) != 1 || page.Records[0].Description != "desc" {
		t.Fatalf("unexpected page %+v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoSearchEscapesFilters(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`WHERE owner_id = \$1 AND content_type ILIKE \$2 AND name ILIKE \$3\s+ORDER BY created_at DESC, id DESC\s+LIMIT \$4 OFFSET \$5`).
		WithArgs("owner-1", "%pdf%", `%50\%\_off%`, 10, 0).
		WillReturnRows(sqlmock.NewRows(recordColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM files WHERE owner_id = \$1 AND content_type ILIKE \$2 AND name ILIKE \$3`).
		WithArgs("owner-1", "%pdf%", `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))

	page, err := repo.Search(context.Background(), "owner-1", "pdf", "50%_off", PageRequest{Number: 0, Size: 10})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if page.Total != 0 || len(page.Records) != 0 {
		t.Fatalf("expected empty page, got %+v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestBuildSearchWhereSingleFilter(t *testing.T) {
	where, args := buildSearchWhere("owner-1", "", "inv")
	if where != "WHERE owner_id = $1 AND name ILIKE $2" {
		t.Fatalf("unexpected where %q", where)
	}
	if len(args) != 2 || args[1] != "%inv%" {
		t.Fatalf("unexpected args %v", args)
	}
}

func TestPGRepoDelete(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec(`DELETE FROM files WHERE id = \$1`).
		WithArgs("fid-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.Delete(context.Background(), "fid-1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
