package images

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"filemanager-backend/internal/shared/server/respond"
	"filemanager-backend/internal/shared/telemetry"
)

const (
	formImage      = "image"
	formUploadName = "uploadName"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches image routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/images/upload", h.upload)
	rg.DELETE("/images/delete", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxByteSize+(1<<20))

	fh, err := c.FormFile(formImage)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.BadRequest(c, respond.ExceededImageSize, nil)
			return
		}
		respond.BadRequest(c, respond.MissingRequiredFields, nil)
		return
	}

	var uploadName *string
	if v, ok := c.GetPostForm(formUploadName); ok {
		uploadName = &v
	} else if q, ok := c.GetQuery(formUploadName); ok {
		uploadName = &q
	}

	img := Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Open: func() (io.ReadCloser, error) {
			return fh.Open()
		},
	}
	rejected := ImageResponse{ContentType: img.ContentType, ImageByteSize: img.Size}

	url, err := h.Svc.Upload(c.Request.Context(), uploadName, img)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissing):
			respond.BadRequest(c, respond.MissingRequiredFields, nil)
		case errors.Is(err, ErrInvalidName):
			respond.BadRequest(c, respond.InvalidUploadName, nil)
		case errors.Is(err, ErrInvalidType):
			respond.BadRequest(c, respond.InvalidImageType, rejected)
		case errors.Is(err, ErrTooLarge):
			respond.BadRequest(c, respond.ExceededImageSize, rejected)
		default:
			telemetry.Error("images.upload.failed", map[string]any{
				"filename": img.Filename,
				"error":    err.Error(),
			})
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.ImageUpload, ImageResponse{
		ImageURL:      &url,
		ContentType:   img.ContentType,
		ImageByteSize: img.Size,
	})
}

func (h *Handler) delete(c *gin.Context) {
	var req deleteRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		respond.BadRequest(c, respond.MissingRequiredFields, nil)
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), req.ImageURL); err != nil {
		switch {
		case errors.Is(err, ErrInvalidURL):
			respond.BadRequest(c, respond.InvalidImageURL, nil)
		default:
			telemetry.Error("images.delete.failed", map[string]any{
				"image_url": req.ImageURL,
				"error":     err.Error(),
			})
			respond.InternalError(c)
		}
		return
	}

	respond.Success(c, respond.ImageDelete, nil)
}
