package asset

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/inneranimal/inneranimal-api/internal/pkg/vision"
)

// Category is the closed set of asset kinds the pipeline distinguishes
type Category string

const (
	CategoryImage    Category = "image"
	CategoryVideo    Category = "video"
	CategoryDocument Category = "document"
	CategoryOther    Category = "other"
)

var imageMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

var videoMimeTypes = map[string]bool{
	"video/mp4":  true,
	"video/webm": true,
}

var documentMimeTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// DetectCategory maps a MIME type onto the category enum. Allowed uploads
// that are neither image nor video are documents; anything else is other.
func DetectCategory(mimeType string) Category {
	switch {
	case imageMimeTypes[mimeType]:
		return CategoryImage
	case videoMimeTypes[mimeType]:
		return CategoryVideo
	case documentMimeTypes[mimeType], strings.HasPrefix(mimeType, "text/"):
		return CategoryDocument
	default:
		return CategoryOther
	}
}

// AllowedExtensions is the fixed list accepted by the upload endpoint
var AllowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".webm": true,
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
}

// ExtensionAllowed reports whether the filename extension is accepted
func ExtensionAllowed(filename string) bool {
	return AllowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Rendition is one optimized output stored for an asset
type Rendition struct {
	Format   string `json:"format"`
	Size     int64  `json:"size"`
	URL      string `json:"url"`
	FileName string `json:"file_name"`
	Variant  string `json:"variant,omitempty"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

// StepOutcome records the result of one pipeline step. Failed optimization
// steps are skipped, not fatal, so callers can tell a partial success from
// a full one.
type StepOutcome struct {
	Step   string `json:"step"`
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

// Asset is the immutable metadata record written once per upload. It is
// never mutated after creation; deletion is owned by bucket lifecycle
// policy.
type Asset struct {
	ID            string         `json:"file_id"`
	OriginalName  string         `json:"original_name"`
	OriginalSize  int64          `json:"original_size"`
	OptimizedSize int64          `json:"optimized_size"`
	Category      Category       `json:"category"`
	Labels        []vision.Label `json:"ai_labels"`
	Confidence    float64        `json:"ai_confidence"`
	ShareURL      string         `json:"share_url"`
	ProcessedAt   time.Time      `json:"processed_at"`
	ProcessingMS  int64          `json:"processing_ms"`
	Renditions    []Rendition    `json:"renditions"`
	Steps         []StepOutcome  `json:"steps"`
}

// BestRendition picks the rendition a share link should resolve to:
// desktop WebP first, then any WebP, then whatever is available.
func (a *Asset) BestRendition() *Rendition {
	for i := range a.Renditions {
		r := &a.Renditions[i]
		if r.Format == "webp" && r.Variant == "desktop" {
			return r
		}
	}
	for i := range a.Renditions {
		if a.Renditions[i].Format == "webp" {
			return &a.Renditions[i]
		}
	}
	if len(a.Renditions) > 0 {
		return &a.Renditions[0]
	}
	return nil
}
