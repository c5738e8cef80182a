package documents

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"docvault-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches document routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/documents", h.upload)
	rg.GET("/documents", h.search)
	rg.GET("/documents/:id", h.get)
	rg.GET("/documents/:id/download", h.download)
	rg.DELETE("/documents/:id", h.delete)
}

func (h *Handler) upload(c *gin.Context) {
	if h.Svc.MaxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Svc.MaxUploadBytes)
	}

	form, err := c.MultipartForm()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no files provided", nil)
		return
	}

	headers := form.File["files[]"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}
	if len(headers) == 0 {
		headers = form.File["file"]
	}
	if len(headers) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "no files provided", nil)
		return
	}

	var files []IngestFile
	var unreadable []FailedFile
	for _, fh := range headers {
		if fh.Filename == "" {
			continue
		}
		src, err := fh.Open()
		if err != nil {
			unreadable = append(unreadable, FailedFile{Filename: fh.Filename, Error: "unable to read file"})
			continue
		}
		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			unreadable = append(unreadable, FailedFile{Filename: fh.Filename, Error: "unable to read file"})
			continue
		}
		files = append(files, IngestFile{Filename: fh.Filename, Data: data})
	}

	result := h.Svc.Ingest(c.Request.Context(), files)
	result.Errors = append(result.Errors, unreadable...)

	c.Set("batchId", result.BatchID)
	// Partial failure is normal; the partition tells the client what happened.
	respond.JSON(c, http.StatusOK, result)
}

func (h *Handler) search(c *gin.Context) {
	query := c.Query("q")

	summaries, err := h.Svc.Search(c.Request.Context(), query)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search documents", nil)
		return
	}

	results := make([]SummaryResponse, 0, len(summaries))
	for _, s := range summaries {
		results = append(results, toSummaryResponse(s))
	}

	respond.JSON(c, http.StatusOK, gin.H{"results": results})
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch document", nil)
		return
	}

	c.Set("documentId", strconv.FormatInt(doc.ID, 10))
	respond.JSON(c, http.StatusOK, toDocumentResponse(doc))
}

func (h *Handler) download(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	doc, rc, err := h.Svc.Download(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "file not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to download document", nil)
		return
	}
	defer rc.Close()

	c.Set("documentId", strconv.FormatInt(doc.ID, 10))
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", doc.OriginalFilename),
	}
	c.DataFromReader(http.StatusOK, doc.SizeBytes, "application/octet-stream", rc, extraHeaders)
}

func (h *Handler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "document not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to delete document", nil)
		return
	}

	c.Set("documentId", strconv.FormatInt(id, 10))
	respond.JSON(c, http.StatusOK, gin.H{"success": true, "message": "document deleted"})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid document id", nil)
		return 0, false
	}
	return id, true
}
