package files

import "time"

// FileRecord is the indexed metadata for one stored file.
type FileRecord struct {
	ID          string
	Name        string
	Description string
	URL         string
	OwnerID     string
	ContentType string
	ByteSize    int64
	Category    Category
	StorageKey  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PageRequest selects a zero-based page of records.
type PageRequest struct {
	Number int
	Size   int
}

// Offset returns the number of records to skip.
func (p PageRequest) Offset() int {
	return p.Number * p.Size
}

// Page is one page of records plus the total number of matches.
type Page struct {
	Records []FileRecord
	Total   int64
}

// Policy holds the upload and listing limits applied by the service.
type Policy struct {
	FileMaxByteSize int64
	MaxFileCount    int
	AllowedTypes    []string
	QuotaBytes      int64
	PageMaxSize     int
}

func (p Policy) allows(contentType string) bool {
	for _, t := range p.AllowedTypes {
		if t == contentType {
			return true
		}
	}
	return false
}
