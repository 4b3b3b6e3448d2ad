package files

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/shared/metrics"
	"filemanager-backend/internal/shared/server/middleware"
	"filemanager-backend/internal/shared/server/respond"
	"filemanager-backend/internal/shared/telemetry"
)

// Multipart field names.
const (
	formFiles    = "files"
	formFileName = "fileName"
)

// Extra room for multipart framing on top of the file bytes.
const multipartOverhead = 1 << 20

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches file routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/files/upload", h.upload)
	rg.GET("/files/download/:fileId", h.download)
	rg.GET("/files/summary/type/:type/name/:name/:page/:size", h.summary)
	rg.PUT("/files", h.update)
	rg.DELETE("/files/:fileId", h.delete)
	rg.GET("/files/:fileId", h.detail)
}

func (h *Handler) upload(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	policy := h.Svc.Policy()
	// Room for one part past the count limit, so the count rule is seen before the body cap.
	maxBody := (policy.FileMaxByteSize+multipartOverhead)*int64(policy.MaxFileCount+1) + multipartOverhead
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBody)

	form, err := readUploadForm(c.Request, policy.MaxFileCount, policy.FileMaxByteSize)
	defer form.cleanup()
	if err != nil {
		switch {
		case errors.Is(err, errTooManyFiles):
			metrics.IncUploadRejected(metrics.KindFile, string(CodeMaxFileCount))
			respond.BadRequest(c, respond.MaxFileCount, nil)
		case errors.Is(err, errBodyTooLarge):
			metrics.IncUploadRejected(metrics.KindFile, string(CodeExceededFileSize))
			respond.BadRequest(c, respond.ExceededFileSize, nil)
		default:
			respond.BadRequest(c, respond.MissingRequiredFields, nil)
		}
		return
	}
	if len(form.files) == 0 {
		respond.BadRequest(c, respond.MissingRequiredFields, nil)
		return
	}

	displayName := form.fileName
	if displayName == nil {
		if q, ok := c.GetQuery(formFileName); ok {
			displayName = &q
		}
	}

	recs, err := h.Svc.UploadBatch(c.Request.Context(), ownerID, displayName, form.uploads())
	if err != nil {
		var perr *PolicyError
		switch {
		case errors.As(err, &perr):
			respond.BadRequest(c, policyStatus(perr.Code), partial(recs))
		case errors.Is(err, ErrInvalidInput):
			respond.BadRequest(c, respond.UnsupportedFileType, partial(recs))
		default:
			telemetry.Error("files.upload.failed", map[string]any{
				"owner_id": ownerID,
				"stored":   len(recs),
				"error":    err.Error(),
			})
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.FileUpload, toFileList(recs))
}

func partial(recs []FileRecord) any {
	if len(recs) == 0 {
		return nil
	}
	return toFileList(recs)
}

func policyStatus(code PolicyCode) respond.Status {
	switch code {
	case CodeMaxFileCount:
		return respond.MaxFileCount
	case CodeExceededFileSize:
		return respond.ExceededFileSize
	default:
		return respond.UnsupportedFileFormat
	}
}

func (h *Handler) download(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	fileID := c.Param("fileId")
	c.Set(middleware.FileIDKey, fileID)

	key, err := h.Svc.ResolveKey(c.Request.Context(), fileID, ownerID)
	if err == nil {
		var data []byte
		data, err = h.Svc.Fetch(c.Request.Context(), key)
		if err == nil {
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", key))
			c.Data(http.StatusOK, "application/octet-stream", data)
			return
		}
	}

	switch {
	case errors.Is(err, ErrInvalidReference), errors.Is(err, ErrNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	default:
		telemetry.Error("files.download.failed", map[string]any{
			"owner_id": ownerID,
			"file_id":  fileID,
			"error":    err.Error(),
		})
		c.AbortWithStatus(http.StatusBadRequest)
	}
}

func (h *Handler) summary(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)

	page, perr := strconv.Atoi(c.Param("page"))
	size, serr := strconv.Atoi(c.Param("size"))
	if perr != nil || serr != nil {
		respond.BadRequest(c, respond.InvalidPagination, nil)
		return
	}

	sum, err := h.Svc.Summarize(c.Request.Context(), ownerID, SummaryQuery{
		Category: c.Param("type"),
		Name:     c.Param("name"),
		Page:     page,
		Size:     size,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.BadRequest(c, respond.InvalidPagination, nil)
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.FileSummary, toSummary(sum))
}

func (h *Handler) update(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, respond.MissingRequiredFields, nil)
		return
	}
	c.Set(middleware.FileIDKey, req.FileID)

	_, err := h.Svc.Update(c.Request.Context(), ownerID, UpdateRequest{
		FileID:      req.FileID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidInput):
			respond.BadRequest(c, respond.MissingRequiredFields, nil)
		case errors.Is(err, ErrInvalidReference):
			respond.BadRequest(c, respond.InvalidFileID, nil)
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.UpdateFile, nil)
}

func (h *Handler) delete(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	fileID := c.Param("fileId")
	c.Set(middleware.FileIDKey, fileID)

	if err := h.Svc.Delete(c.Request.Context(), fileID, ownerID); err != nil {
		switch {
		case errors.Is(err, ErrInvalidReference):
			respond.BadRequest(c, respond.InvalidFileID, nil)
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.DeleteFile, nil)
}

func (h *Handler) detail(c *gin.Context) {
	ownerID := middleware.OwnerIDFromContext(c)
	fileID := c.Param("fileId")
	c.Set(middleware.FileIDKey, fileID)

	rec, err := h.Svc.Detail(c.Request.Context(), fileID, ownerID)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidReference):
			respond.BadRequest(c, respond.InvalidFileID, nil)
		default:
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.FileDetail, toDetail(rec))
}
