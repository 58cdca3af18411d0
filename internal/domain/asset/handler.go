package asset

import (
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/inneranimal/inneranimal-api/internal/pkg/response"
)

const (
	MaxUploadFiles = 10
	MaxFileSize    = 100 * 1024 * 1024 // 100 MB per file
)

// Handler handles asset HTTP requests
type Handler struct {
	processor *Processor
}

// NewHandler creates asset handler
func NewHandler(processor *Processor) *Handler {
	return &Handler{processor: processor}
}

// UploadResponse wraps per-file results
type UploadResponse struct {
	Results     []*Result `json:"results"`
	TotalFiles  int       `json:"total_files"`
	ProcessedAt string    `json:"processed_at"`
}

// Upload handles POST /assets/upload.
// Multipart form, field "files", up to 10 files of 100 MB each. Per-file
// success and failure are reported independently.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadFiles*MaxFileSize)

	if err := r.ParseMultipartForm(64 << 20); err != nil {
		response.BadRequest(w, "File too large or invalid form")
		return
	}

	files := r.MultipartForm.File["files"]
	if len(files) == 0 {
		response.BadRequest(w, "No files uploaded")
		return
	}
	if len(files) > MaxUploadFiles {
		response.BadRequest(w, "Too many files (max 10)")
		return
	}

	results := make([]*Result, 0, len(files))
	for _, header := range files {
		if header.Size > MaxFileSize {
			results = append(results, &Result{
				Success:      false,
				OriginalName: header.Filename,
				Error:        "file exceeds 100MB limit",
			})
			continue
		}
		if !ExtensionAllowed(header.Filename) {
			results = append(results, &Result{
				Success:      false,
				OriginalName: header.Filename,
				Error:        "file type not supported",
			})
			continue
		}

		file, err := header.Open()
		if err != nil {
			results = append(results, &Result{
				Success:      false,
				OriginalName: header.Filename,
				Error:        "failed to read file",
			})
			continue
		}

		data, err := io.ReadAll(file)
		if err != nil {
			file.Close()
			results = append(results, &Result{
				Success:      false,
				OriginalName: header.Filename,
				Error:        "failed to read file",
			})
			continue
		}
		file.Close()

		results = append(results, h.processor.Process(r.Context(), data, header.Filename))
	}

	response.OK(w, UploadResponse{
		Results:     results,
		TotalFiles:  len(files),
		ProcessedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// GetMetadata handles GET /assets/{id}
func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.processor.LoadMetadata(r.Context(), id)
	if err != nil {
		if err == ErrAssetNotFound {
			response.NotFound(w, "File not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	response.OK(w, record)
}

// Shared handles GET /shared/{id}: redirects to the best available
// rendition of the asset.
func (h *Handler) Shared(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	record, err := h.processor.LoadMetadata(r.Context(), id)
	if err != nil {
		if err == ErrAssetNotFound {
			response.NotFound(w, "File not found")
		} else {
			response.InternalError(w)
		}
		return
	}

	best := record.BestRendition()
	if best == nil {
		response.NotFound(w, "No optimized file found")
		return
	}

	http.Redirect(w, r, best.URL, http.StatusFound)
}
