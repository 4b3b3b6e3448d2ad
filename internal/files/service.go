package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"filemanager-backend/internal/shared/ident"
	"filemanager-backend/internal/shared/metrics"
	"filemanager-backend/internal/shared/storage/object"
	"filemanager-backend/internal/shared/telemetry"
	"filemanager-backend/internal/shared/util"
)

// NoFilter is the query value that disables a summary filter.
const NoFilter = "NONE"

// Upload is one file of an upload batch.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Open        func() (io.ReadCloser, error)
}

// UpdateRequest carries the editable fields of a record.
type UpdateRequest struct {
	FileID      string
	Name        string
	Description *string
}

// SummaryQuery selects a page of an owner's files. Category and Name take NoFilter
// to match everything.
type SummaryQuery struct {
	Category string
	Name     string
	Page     int
	Size     int
}

// Volume reports an owner's allowance and what is left of it.
type Volume struct {
	MaxBytes       int64
	RemainingBytes int64
}

// Summary is the result of Summarize.
type Summary struct {
	Volume        Volume
	Categories    []string
	Records       []FileRecord
	TotalElements int64
	TotalPages    int
	Page          int
	Size          int
}

// Service keeps the object store and the metadata index in step.
type Service struct {
	Store  object.ObjectStore
	Repo   Repo
	Now    func() time.Time
	policy Policy
}

// NewService constructs a Service. The policy is copied and fixed for the
// lifetime of the service.
func NewService(store object.ObjectStore, repo Repo, policy Policy) *Service {
	policy.AllowedTypes = append([]string(nil), policy.AllowedTypes...)
	return &Service{Store: store, Repo: repo, policy: policy}
}

// Policy returns a copy of the limits the service enforces.
func (s *Service) Policy() Policy {
	p := s.policy
	p.AllowedTypes = append([]string(nil), p.AllowedTypes...)
	return p
}

// UploadBatch stores every file of the batch and indexes it under ownerID.
//
// Count and allowed-type rules are checked before anything is written. The size rule
// is checked per file, so a failure there returns the records already stored together
// with the error.
func (s *Service) UploadBatch(ctx context.Context, ownerID string, displayName *string, batch []Upload) ([]FileRecord, error) {
	if len(batch) > s.policy.MaxFileCount {
		metrics.IncUploadRejected(metrics.KindFile, string(CodeMaxFileCount))
		return nil, &PolicyError{Code: CodeMaxFileCount}
	}
	// One allowed type admits the whole batch.
	allowed := false
	for _, u := range batch {
		if s.policy.allows(u.ContentType) {
			allowed = true
			break
		}
	}
	if !allowed {
		metrics.IncUploadRejected(metrics.KindFile, string(CodeUnsupportedFileFormat))
		return nil, &PolicyError{Code: CodeUnsupportedFileFormat}
	}

	name := ""
	if displayName != nil {
		name = strings.TrimSpace(*displayName)
	}

	results := make([]FileRecord, 0, len(batch))
	for i, u := range batch {
		if u.Size > s.policy.FileMaxByteSize {
			metrics.IncUploadRejected(metrics.KindFile, string(CodeExceededFileSize))
			return results, &PolicyError{Code: CodeExceededFileSize}
		}
		rec, err := s.uploadOne(ctx, ownerID, recordName(name, u.Filename, i+1, len(batch)), u)
		if err != nil {
			return results, err
		}
		results = append(results, rec)
	}
	return results, nil
}

func recordName(display, original string, pos, count int) string {
	if display == "" {
		return original
	}
	if count > 1 {
		return fmt.Sprintf("%s-%d", display, pos)
	}
	return display
}

func (s *Service) uploadOne(ctx context.Context, ownerID, name string, u Upload) (FileRecord, error) {
	category, err := Classify(u.ContentType)
	if err != nil {
		return FileRecord{}, err
	}

	id := ident.New(ident.File)
	key := storageKey(id, u.Filename)

	body, err := u.Open()
	if err != nil {
		return FileRecord{}, internal("open upload", err)
	}
	defer body.Close()

	if err := s.Store.Put(ctx, key, body, u.ContentType, u.Size); err != nil {
		return FileRecord{}, internal("store object", err)
	}

	now := s.now()
	rec := FileRecord{
		ID:          id,
		Name:        name,
		URL:         s.Store.URL(key),
		OwnerID:     ownerID,
		ContentType: u.ContentType,
		ByteSize:    u.Size,
		Category:    category,
		StorageKey:  key,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Save(ctx, rec); err != nil {
		metrics.IncOrphanedObject("upload")
		telemetry.Error("files.upload.orphaned_object", map[string]any{
			"storage_key": key,
			"owner_id":    ownerID,
			"error":       err.Error(),
		})
		return FileRecord{}, internal("index file", err)
	}

	metrics.ObserveUpload(metrics.KindFile, u.Size)
	return rec, nil
}

func storageKey(id, filename string) string {
	ext := util.Extension(filename)
	if ext == "" {
		return id
	}
	return id + "." + ext
}

// ResolveKey returns the storage key of an owner's file.
func (s *Service) ResolveKey(ctx context.Context, id, ownerID string) (string, error) {
	rec, err := s.lookup(ctx, id, ownerID)
	if err != nil {
		return "", err
	}
	if rec.StorageKey != "" {
		return rec.StorageKey, nil
	}
	return rec.URL[strings.LastIndex(rec.URL, "/")+1:], nil
}

// Fetch reads the full content stored under key.
func (s *Service) Fetch(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.Store.Open(ctx, key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, internal("open object", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, internal("read object", err)
	}
	return data, nil
}

// Detail returns an owner's file record.
func (s *Service) Detail(ctx context.Context, id, ownerID string) (FileRecord, error) {
	return s.lookup(ctx, id, ownerID)
}

// Update replaces the name and description of an owner's file.
// A nil or empty description clears it.
func (s *Service) Update(ctx context.Context, ownerID string, req UpdateRequest) (FileRecord, error) {
	req.FileID = strings.TrimSpace(req.FileID)
	req.Name = strings.TrimSpace(req.Name)
	if req.FileID == "" || req.Name == "" {
		return FileRecord{}, fmt.Errorf("%w: fileId and name are required", ErrInvalidInput)
	}

	rec, err := s.lookup(ctx, req.FileID, ownerID)
	if err != nil {
		return FileRecord{}, err
	}

	rec.Name = req.Name
	rec.Description = ""
	if req.Description != nil {
		rec.Description = *req.Description
	}
	now := s.now()
	if !now.After(rec.UpdatedAt) {
		now = rec.UpdatedAt.Add(time.Microsecond)
	}
	rec.UpdatedAt = now

	if err := s.Repo.Save(ctx, rec); err != nil {
		return FileRecord{}, internal("update file", err)
	}
	return rec, nil
}

// Delete removes an owner's file: the index row first, then the stored object.
// If the object delete fails the row is already gone and the object is reported
// as orphaned.
func (s *Service) Delete(ctx context.Context, id, ownerID string) error {
	key, err := s.ResolveKey(ctx, id, ownerID)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return internal("delete file record", err)
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		metrics.IncOrphanedObject("delete")
		telemetry.Error("files.delete.orphaned_object", map[string]any{
			"storage_key": key,
			"owner_id":    ownerID,
			"file_id":     id,
			"error":       err.Error(),
		})
		return internal("delete object", err)
	}
	metrics.IncDelete(metrics.KindFile)
	return nil
}

// Summarize returns the owner's allowance together with one page of files,
// optionally filtered by category and name substring.
func (s *Service) Summarize(ctx context.Context, ownerID string, q SummaryQuery) (Summary, error) {
	if q.Page < 0 {
		return Summary{}, fmt.Errorf("%w: page must not be negative", ErrInvalidInput)
	}
	if q.Size < 1 || q.Size > s.policy.PageMaxSize {
		return Summary{}, fmt.Errorf("%w: size must be between 1 and %d", ErrInvalidInput, s.policy.PageMaxSize)
	}
	if q.Page > math.MaxInt/q.Size {
		return Summary{}, fmt.Errorf("%w: page %d is out of range", ErrInvalidInput, q.Page)
	}

	category := strings.TrimSpace(q.Category)
	name := strings.TrimSpace(q.Name)
	if category == NoFilter {
		category = ""
	} else if IsValidCategory(category) {
		category = strings.ToLower(category)
	}
	if name == NoFilter {
		name = ""
	}

	page := PageRequest{Number: q.Page, Size: q.Size}
	var (
		result Page
		err    error
	)
	if category == "" && name == "" {
		result, err = s.Repo.ListByOwner(ctx, ownerID, page)
	} else {
		result, err = s.Repo.Search(ctx, ownerID, category, name, page)
	}
	if err != nil {
		return Summary{}, internal("list files", err)
	}

	remaining, err := Quota{Repo: s.Repo, Ceiling: s.policy.QuotaBytes}.Remaining(ctx, ownerID)
	if err != nil {
		return Summary{}, internal("sum file sizes", err)
	}

	totalPages := int((result.Total + int64(q.Size) - 1) / int64(q.Size))
	return Summary{
		Volume:        Volume{MaxBytes: s.policy.QuotaBytes, RemainingBytes: remaining},
		Categories:    Categories(),
		Records:       result.Records,
		TotalElements: result.Total,
		TotalPages:    totalPages,
		Page:          q.Page,
		Size:          q.Size,
	}, nil
}

func (s *Service) lookup(ctx context.Context, id, ownerID string) (FileRecord, error) {
	rec, err := s.Repo.GetByID(ctx, strings.TrimSpace(id), ownerID)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return FileRecord{}, ErrInvalidReference
		}
		return FileRecord{}, internal("lookup file", err)
	}
	return rec, nil
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}
