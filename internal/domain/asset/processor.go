package asset

import (
	"bytes"
	"context"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	pkgimaging "github.com/inneranimal/inneranimal-api/internal/pkg/imaging"
	"github.com/inneranimal/inneranimal-api/internal/pkg/storage"
	"github.com/inneranimal/inneranimal-api/internal/pkg/vision"
)

const (
	StepUploadOriginal = "upload-original"
	StepLabel          = "ai-label"
	StepStoreOriginal  = "store-original"
	StepStoreMetadata  = "store-metadata"
)

// Processor orchestrates the asset pipeline: upload original, AI-label,
// format-specific optimization, metadata write. It never returns an error
// past its boundary; every call produces a Result.
type Processor struct {
	raw       storage.Storage
	optimized storage.Storage
	meta      storage.Storage
	labeler   vision.Labeler // nil when Vision is not configured
	optimizer *pkgimaging.Optimizer
	baseURL   string // public base for share links
}

// NewProcessor creates the pipeline. labeler may be nil; labeling then
// degrades to a generic low-confidence label.
func NewProcessor(raw, optimized, meta storage.Storage, labeler vision.Labeler, optimizer *pkgimaging.Optimizer, baseURL string) *Processor {
	return &Processor{
		raw:       raw,
		optimized: optimized,
		meta:      meta,
		labeler:   labeler,
		optimizer: optimizer,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Result is the per-file outcome returned to the upload caller
type Result struct {
	Success       bool          `json:"success"`
	FileID        string        `json:"file_id,omitempty"`
	OriginalName  string        `json:"original_name"`
	OriginalSize  int64         `json:"original_size,omitempty"`
	OptimizedSize int64         `json:"optimized_size,omitempty"`
	ShareURL      string        `json:"share_url,omitempty"`
	Category      Category      `json:"category,omitempty"`
	Labels        []string      `json:"ai_labels,omitempty"`
	ProcessingMS  int64         `json:"processing_ms,omitempty"`
	Renditions    []Rendition   `json:"renditions,omitempty"`
	Steps         []StepOutcome `json:"steps,omitempty"`
	Error         string        `json:"error,omitempty"`
}

// Process runs the pipeline for one file buffer. Fatal failures (original
// upload, metadata write) produce a failure Result; per-rendition failures
// are recorded in Steps and skipped. Partial uploads from a failed run are
// not rolled back; bucket lifecycle policy owns orphan cleanup.
func (p *Processor) Process(ctx context.Context, data []byte, originalName string) *Result {
	start := time.Now()
	id := uuid.New().String()
	mimeType := detectMime(data, originalName)
	category := DetectCategory(mimeType)

	var steps []StepOutcome

	// 1. Original to the raw bucket, untouched
	rawKey := fmt.Sprintf("originals/%s/%s", id, sanitizeFileName(originalName))
	if err := p.raw.Put(ctx, rawKey, bytes.NewReader(data), mimeType); err != nil {
		log.Error().Err(err).Str("file", originalName).Msg("Original upload failed")
		return &Result{
			Success:      false,
			OriginalName: originalName,
			Error:        "failed to store original file",
			Steps:        append(steps, StepOutcome{Step: StepUploadOriginal, OK: false, Reason: err.Error()}),
		}
	}
	steps = append(steps, StepOutcome{Step: StepUploadOriginal, OK: true})

	// 2. AI labels; failure downgrades, never aborts
	labels, confidence, labelStep := p.label(ctx, data, category)
	steps = append(steps, labelStep)

	// 3. Format-specific optimization
	var renditions []Rendition
	switch category {
	case CategoryImage:
		var optSteps []StepOutcome
		renditions, optSteps = p.optimizeImage(ctx, data, id, originalName)
		steps = append(steps, optSteps...)
	case CategoryVideo:
		// Video optimization is a placeholder: store the original as-is
		r, step := p.storeAsIs(ctx, data, id, originalName, mimeType, "videos")
		steps = append(steps, step)
		if r != nil {
			renditions = append(renditions, *r)
		}
	case CategoryDocument, CategoryOther:
		r, step := p.storeAsIs(ctx, data, id, originalName, mimeType, "documents")
		steps = append(steps, step)
		if r != nil {
			renditions = append(renditions, *r)
		}
	}

	var optimizedSize int64
	for _, r := range renditions {
		optimizedSize += r.Size
	}

	// 4. Metadata record
	record := &Asset{
		ID:            id,
		OriginalName:  originalName,
		OriginalSize:  int64(len(data)),
		OptimizedSize: optimizedSize,
		Category:      category,
		Labels:        labels,
		Confidence:    confidence,
		ShareURL:      fmt.Sprintf("%s/shared/%s", p.baseURL, id),
		ProcessedAt:   time.Now().UTC(),
		ProcessingMS:  time.Since(start).Milliseconds(),
		Renditions:    renditions,
		Steps:         steps,
	}

	if err := p.storeMetadata(ctx, record); err != nil {
		// Uploaded blobs stay behind; see bucket lifecycle policy
		log.Error().Err(err).Str("file_id", id).Msg("Metadata write failed")
		return &Result{
			Success:      false,
			OriginalName: originalName,
			Error:        "failed to store asset metadata",
			Steps:        append(steps, StepOutcome{Step: StepStoreMetadata, OK: false, Reason: err.Error()}),
		}
	}

	labelNames := make([]string, len(labels))
	for i, l := range labels {
		labelNames[i] = l.Description
	}

	return &Result{
		Success:       true,
		FileID:        id,
		OriginalName:  originalName,
		OriginalSize:  record.OriginalSize,
		OptimizedSize: optimizedSize,
		ShareURL:      record.ShareURL,
		Category:      category,
		Labels:        labelNames,
		ProcessingMS:  record.ProcessingMS,
		Renditions:    renditions,
		Steps:         append(steps, StepOutcome{Step: StepStoreMetadata, OK: true}),
	}
}

// label returns AI labels for the buffer. Non-images get a basic category
// label; a labeler failure yields a generic low-confidence label; an empty
// response yields no labels and zero confidence.
func (p *Processor) label(ctx context.Context, data []byte, category Category) ([]vision.Label, float64, StepOutcome) {
	if category != CategoryImage || p.labeler == nil {
		return []vision.Label{{Description: string(category), Score: 0.8}}, 0.8,
			StepOutcome{Step: StepLabel, OK: true}
	}

	labels, err := p.labeler.DetectLabels(ctx, data)
	if err != nil {
		log.Warn().Err(err).Msg("AI labeling failed, using generic label")
		return []vision.Label{{Description: "file", Score: 0.5}}, 0.5,
			StepOutcome{Step: StepLabel, OK: false, Reason: err.Error()}
	}
	if len(labels) == 0 {
		return []vision.Label{}, 0, StepOutcome{Step: StepLabel, OK: true}
	}
	return labels, labels[0].Score, StepOutcome{Step: StepLabel, OK: true}
}

// optimizeImage runs the multi-rendition optimizer and stores every
// successful rendition. Each attempt is independent.
func (p *Processor) optimizeImage(ctx context.Context, data []byte, id, originalName string) ([]Rendition, []StepOutcome) {
	ext := filepath.Ext(originalName)
	base := strings.TrimSuffix(sanitizeFileName(originalName), ext)

	outcomes, err := p.optimizer.Optimize(data)
	if err != nil {
		return nil, []StepOutcome{{Step: "optimize", OK: false, Reason: err.Error()}}
	}

	var renditions []Rendition
	var steps []StepOutcome
	for _, out := range outcomes {
		if out.Err != nil {
			log.Warn().Err(out.Err).Str("step", out.Step).Msg("Rendition skipped")
			steps = append(steps, StepOutcome{Step: out.Step, OK: false, Reason: out.Err.Error()})
			continue
		}

		r := out.Rendition
		name := base + "." + r.Format
		if r.Variant != "" {
			name = fmt.Sprintf("%s-%s.%s", base, r.Variant, r.Format)
		}
		key := fmt.Sprintf("images/%s/%s", id, name)

		if err := p.optimized.Put(ctx, key, bytes.NewReader(r.Data), "image/"+r.Format); err != nil {
			log.Warn().Err(err).Str("step", out.Step).Msg("Rendition upload failed")
			steps = append(steps, StepOutcome{Step: out.Step, OK: false, Reason: err.Error()})
			continue
		}

		renditions = append(renditions, Rendition{
			Format:   r.Format,
			Size:     int64(len(r.Data)),
			URL:      p.optimized.GetURL(key),
			FileName: key,
			Variant:  r.Variant,
			Width:    r.Width,
			Height:   r.Height,
		})
		steps = append(steps, StepOutcome{Step: out.Step, OK: true})
	}

	return renditions, steps
}

// storeAsIs stores the buffer unmodified in the optimized bucket
func (p *Processor) storeAsIs(ctx context.Context, data []byte, id, originalName, mimeType, prefix string) (*Rendition, StepOutcome) {
	key := fmt.Sprintf("%s/%s/%s", prefix, id, sanitizeFileName(originalName))
	if err := p.optimized.Put(ctx, key, bytes.NewReader(data), mimeType); err != nil {
		return nil, StepOutcome{Step: StepStoreOriginal, OK: false, Reason: err.Error()}
	}
	return &Rendition{
		Format:   "original",
		Size:     int64(len(data)),
		URL:      p.optimized.GetURL(key),
		FileName: key,
	}, StepOutcome{Step: StepStoreOriginal, OK: true}
}

// detectMime sniffs content first and falls back to the file extension
func detectMime(data []byte, filename string) string {
	mimeType := sniffContentType(data)
	if mimeType == "application/octet-stream" {
		if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); byExt != "" {
			mimeType = byExt
		}
	}
	if idx := strings.Index(mimeType, ";"); idx != -1 {
		mimeType = strings.TrimSpace(mimeType[:idx])
	}
	return mimeType
}

func sanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	if name == "" {
		return "file"
	}
	return name
}
