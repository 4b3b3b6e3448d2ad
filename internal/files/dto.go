package files

import "time"

// FileResponse describes one uploaded file.
type FileResponse struct {
	FileID      string `json:"fileId"`
	URL         string `json:"url"`
	ContentType string `json:"contentType"`
	ByteSize    int64  `json:"byteSize"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// FileListResponse is the payload of a batch upload.
type FileListResponse struct {
	Files []FileResponse `json:"files"`
}

// FileDetailResponse is the payload of a single-file lookup.
type FileDetailResponse struct {
	FileID      string    `json:"fileId"`
	URL         string    `json:"url"`
	ContentType string    `json:"contentType"`
	ByteSize    int64     `json:"byteSize"`
	Category    string    `json:"category"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type volumeResponse struct {
	Total     int64 `json:"total"`
	Remaining int64 `json:"remaining"`
}

type summaryHeader struct {
	Volume    volumeResponse `json:"volume"`
	FileTypes []string       `json:"fileTypes"`
}

// SummaryResponse is the payload of a summary query.
type SummaryResponse struct {
	FileSummaryResponse summaryHeader        `json:"fileSummaryResponse"`
	Files               []FileDetailResponse `json:"files"`
	TotalElements       int64                `json:"totalElements"`
	TotalPages          int                  `json:"totalPages"`
	Page                int                  `json:"page"`
	Size                int                  `json:"size"`
}

type updateRequest struct {
	FileID      string  `json:"fileId"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toFileList(recs []FileRecord) FileListResponse {
	out := FileListResponse{Files: make([]FileResponse, 0, len(recs))}
	for _, rec := range recs {
		out.Files = append(out.Files, FileResponse{
			FileID:      rec.ID,
			URL:         rec.URL,
			ContentType: rec.ContentType,
			ByteSize:    rec.ByteSize,
			Name:        rec.Name,
			Description: rec.Description,
		})
	}
	return out
}

func toDetail(rec FileRecord) FileDetailResponse {
	return FileDetailResponse{
		FileID:      rec.ID,
		URL:         rec.URL,
		ContentType: rec.ContentType,
		ByteSize:    rec.ByteSize,
		Category:    string(rec.Category),
		Name:        rec.Name,
		Description: rec.Description,
		CreatedAt:   rec.CreatedAt,
		UpdatedAt:   rec.UpdatedAt,
	}
}

func toSummary(s Summary) SummaryResponse {
	files := make([]FileDetailResponse, 0, len(s.Records))
	for _, rec := range s.Records {
		files = append(files, toDetail(rec))
	}
	return SummaryResponse{
		FileSummaryResponse: summaryHeader{
			Volume:    volumeResponse{Total: s.Volume.MaxBytes, Remaining: s.Volume.RemainingBytes},
			FileTypes: s.Categories,
		},
		Files:         files,
		TotalElements: s.TotalElements,
		TotalPages:    s.TotalPages,
		Page:          s.Page,
		Size:          s.Size,
	}
}
