package asset

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"

	pkgimaging "github.com/inneranimal/inneranimal-api/internal/pkg/imaging"
	"github.com/inneranimal/inneranimal-api/internal/pkg/storage"
	"github.com/inneranimal/inneranimal-api/internal/pkg/vision"
)

type fakeLabeler struct {
	labels []vision.Label
	err    error
}

func (f *fakeLabeler) DetectLabels(ctx context.Context, data []byte) ([]vision.Label, error) {
	return f.labels, f.err
}

type failingStorage struct{}

func (failingStorage) Put(ctx context.Context, key string, reader io.Reader, contentType string) error {
	return errors.New("storage unavailable")
}
func (failingStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("storage unavailable")
}
func (failingStorage) Delete(ctx context.Context, key string) error {
	return errors.New("storage unavailable")
}
func (failingStorage) Exists(ctx context.Context, key string) (bool, error) {
	return false, errors.New("storage unavailable")
}
func (failingStorage) GetURL(key string) string { return "" }

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 64, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func newTestProcessor(labeler vision.Labeler) (*Processor, *storage.MemoryStorage, *storage.MemoryStorage, *storage.MemoryStorage) {
	raw := storage.NewMemoryStorage("https://raw.test")
	optimized := storage.NewMemoryStorage("https://cdn.test")
	meta := storage.NewMemoryStorage("https://meta.test")
	p := NewProcessor(raw, optimized, meta, labeler, pkgimaging.NewOptimizer(pkgimaging.DefaultConfig()), "https://example.com")
	return p, raw, optimized, meta
}

func TestProcessImageSuccess(t *testing.T) {
	labeler := &fakeLabeler{labels: []vision.Label{
		{Description: "dog", Score: 0.97},
		{Description: "animal", Score: 0.91},
	}}
	p, raw, optimized, meta := newTestProcessor(labeler)

	result := p.Process(context.Background(), pngBytes(t, 640, 480), "photo.png")

	if !result.Success {
		t.Fatalf("expected success, got error %q", result.Error)
	}
	if result.FileID == "" {
		t.Fatal("expected a file id")
	}
	if result.Category != CategoryImage {
		t.Fatalf("expected image category, got %q", result.Category)
	}
	if result.ShareURL != "https://example.com/shared/"+result.FileID {
		t.Fatalf("unexpected share url %q", result.ShareURL)
	}
	if len(result.Labels) != 2 || result.Labels[0] != "dog" {
		t.Fatalf("unexpected labels %v", result.Labels)
	}
	if len(result.Renditions) == 0 {
		t.Fatal("expected at least one rendition")
	}
	if result.OptimizedSize <= 0 {
		t.Fatal("expected a positive optimized size")
	}

	if raw.Len() != 1 {
		t.Fatalf("expected 1 original in the raw bucket, got %d", raw.Len())
	}
	if optimized.Len() != len(result.Renditions) {
		t.Fatalf("expected %d objects in the optimized bucket, got %d", len(result.Renditions), optimized.Len())
	}
	if meta.Len() != 1 {
		t.Fatalf("expected 1 metadata record, got %d", meta.Len())
	}

	// The record must be readable back with the same content.
	record, err := p.LoadMetadata(context.Background(), result.FileID)
	if err != nil {
		t.Fatalf("load metadata: %v", err)
	}
	if record.ID != result.FileID || record.Category != CategoryImage {
		t.Fatalf("metadata mismatch: %+v", record)
	}
	if record.Confidence != 0.97 {
		t.Fatalf("expected confidence 0.97, got %v", record.Confidence)
	}
}

func TestProcessImageRenditionKeys(t *testing.T) {
	p, _, _, _ := newTestProcessor(nil)

	result := p.Process(context.Background(), pngBytes(t, 2400, 1600), "big photo.png")

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}

	var sawDesktopWebP bool
	for _, r := range result.Renditions {
		if !strings.HasPrefix(r.FileName, "images/"+result.FileID+"/") {
			t.Fatalf("rendition key %q not under the asset prefix", r.FileName)
		}
		if r.Format == "webp" && r.Variant == "desktop" {
			sawDesktopWebP = true
			if r.Width > 1920 || r.Height > 1080 {
				t.Fatalf("desktop rendition %dx%d exceeds bounds", r.Width, r.Height)
			}
		}
	}
	if !sawDesktopWebP {
		t.Fatal("expected a desktop webp rendition")
	}
}

func TestProcessLabelerFailureDowngrades(t *testing.T) {
	labeler := &fakeLabeler{err: errors.New("vision quota exceeded")}
	p, _, _, _ := newTestProcessor(labeler)

	result := p.Process(context.Background(), pngBytes(t, 320, 240), "photo.png")

	if !result.Success {
		t.Fatalf("labeler failure must not fail the upload: %q", result.Error)
	}
	if len(result.Labels) != 1 || result.Labels[0] != "file" {
		t.Fatalf("expected the generic fallback label, got %v", result.Labels)
	}

	var found bool
	for _, s := range result.Steps {
		if s.Step == StepLabel {
			found = true
			if s.OK {
				t.Fatal("label step must be reported as failed")
			}
		}
	}
	if !found {
		t.Fatal("label step missing from the step report")
	}
}

func TestProcessNilLabelerUsesCategoryLabel(t *testing.T) {
	p, _, _, _ := newTestProcessor(nil)

	result := p.Process(context.Background(), pngBytes(t, 320, 240), "photo.png")

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if len(result.Labels) != 1 || result.Labels[0] != "image" {
		t.Fatalf("expected the category label, got %v", result.Labels)
	}
}

func TestProcessDocumentStoredAsIs(t *testing.T) {
	p, _, optimized, _ := newTestProcessor(nil)

	data := []byte("%PDF-1.4\nplaceholder document body")
	result := p.Process(context.Background(), data, "report.pdf")

	if !result.Success {
		t.Fatalf("expected success, got %q", result.Error)
	}
	if result.Category != CategoryDocument {
		t.Fatalf("expected document category, got %q", result.Category)
	}
	if len(result.Renditions) != 1 {
		t.Fatalf("expected a single stored copy, got %d renditions", len(result.Renditions))
	}
	r := result.Renditions[0]
	if r.Format != "original" {
		t.Fatalf("expected format original, got %q", r.Format)
	}
	if !strings.HasPrefix(r.FileName, "documents/") {
		t.Fatalf("expected documents/ prefix, got %q", r.FileName)
	}
	if optimized.Len() != 1 {
		t.Fatalf("expected 1 object in the optimized bucket, got %d", optimized.Len())
	}
}

func TestProcessOriginalUploadFailureIsFatal(t *testing.T) {
	optimized := storage.NewMemoryStorage("https://cdn.test")
	meta := storage.NewMemoryStorage("https://meta.test")
	p := NewProcessor(failingStorage{}, optimized, meta, nil, pkgimaging.NewOptimizer(pkgimaging.DefaultConfig()), "https://example.com")

	result := p.Process(context.Background(), pngBytes(t, 320, 240), "photo.png")

	if result.Success {
		t.Fatal("expected failure when the original cannot be stored")
	}
	if result.Error != "failed to store original file" {
		t.Fatalf("unexpected error %q", result.Error)
	}
	if meta.Len() != 0 {
		t.Fatal("no metadata must be written for a failed upload")
	}
	if optimized.Len() != 0 {
		t.Fatal("no renditions must be stored for a failed upload")
	}
}

func TestProcessMetadataFailureIsFatal(t *testing.T) {
	raw := storage.NewMemoryStorage("https://raw.test")
	optimized := storage.NewMemoryStorage("https://cdn.test")
	p := NewProcessor(raw, optimized, failingStorage{}, nil, pkgimaging.NewOptimizer(pkgimaging.DefaultConfig()), "https://example.com")

	result := p.Process(context.Background(), pngBytes(t, 320, 240), "photo.png")

	if result.Success {
		t.Fatal("expected failure when metadata cannot be written")
	}
	if result.Error != "failed to store asset metadata" {
		t.Fatalf("unexpected error %q", result.Error)
	}
}

func TestLoadMetadataNotFound(t *testing.T) {
	p, _, _, _ := newTestProcessor(nil)

	if _, err := p.LoadMetadata(context.Background(), "missing-id"); err != ErrAssetNotFound {
		t.Fatalf("expected ErrAssetNotFound, got %v", err)
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		mime string
		want Category
	}{
		{"image/jpeg", CategoryImage},
		{"image/webp", CategoryImage},
		{"video/mp4", CategoryVideo},
		{"application/pdf", CategoryDocument},
		{"text/plain", CategoryDocument},
		{"application/zip", CategoryOther},
	}
	for _, tt := range tests {
		if got := DetectCategory(tt.mime); got != tt.want {
			t.Fatalf("DetectCategory(%q) = %q, want %q", tt.mime, got, tt.want)
		}
	}
}

func TestBestRendition(t *testing.T) {
	a := &Asset{Renditions: []Rendition{
		{Format: "avif", Variant: ""},
		{Format: "webp", Variant: "mobile"},
		{Format: "webp", Variant: "desktop"},
	}}
	if best := a.BestRendition(); best == nil || best.Variant != "desktop" {
		t.Fatalf("expected the desktop webp, got %+v", best)
	}

	a = &Asset{Renditions: []Rendition{
		{Format: "avif"},
		{Format: "webp", Variant: "mobile"},
	}}
	if best := a.BestRendition(); best == nil || best.Format != "webp" {
		t.Fatalf("expected any webp, got %+v", best)
	}

	a = &Asset{Renditions: []Rendition{{Format: "original"}}}
	if best := a.BestRendition(); best == nil || best.Format != "original" {
		t.Fatalf("expected the first rendition, got %+v", best)
	}

	a = &Asset{}
	if best := a.BestRendition(); best != nil {
		t.Fatalf("expected nil for no renditions, got %+v", best)
	}
}
