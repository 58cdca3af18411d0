package imaging

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

// Breakpoint describes a fixed responsive resize target
type Breakpoint struct {
	Name   string
	Width  int
	Height int
}

// Breakpoints is the fixed rendition set for responsive delivery
var Breakpoints = []Breakpoint{
	{Name: "desktop", Width: 1920, Height: 1080},
	{Name: "tablet", Width: 1200, Height: 800},
	{Name: "mobile", Width: 768, Height: 512},
	{Name: "thumbnail", Width: 400, Height: 300},
}

// Rendition is one encoded output variant of a source image
type Rendition struct {
	Format  string // webp, avif
	Variant string // empty for full-size, otherwise breakpoint name
	Data    []byte
	Width   int
	Height  int
}

// StepResult reports the outcome of a single rendition attempt. A failed
// step carries Err and a nil Rendition; it never aborts the other steps.
type StepResult struct {
	Step      string
	Rendition *Rendition
	Err       error
}

// Config for the optimizer
type Config struct {
	WebPQuality       int // full-size WebP (default 85)
	AVIFQuality       int // full-size AVIF (default 90)
	BreakpointQuality int // breakpoint WebP (default 80)
}

// DefaultConfig returns default optimizer config
func DefaultConfig() Config {
	return Config{
		WebPQuality:       85,
		AVIFQuality:       90,
		BreakpointQuality: 80,
	}
}

// Optimizer produces the fixed rendition set for a source image
type Optimizer struct {
	config Config
}

// NewOptimizer creates an image optimizer
func NewOptimizer(config Config) *Optimizer {
	return &Optimizer{config: config}
}

// Optimize decodes the source once and attempts every rendition
// independently: full-size WebP, full-size AVIF, and one WebP per
// breakpoint. Resizes fit inside the target bounds preserving aspect ratio
// and never enlarge a smaller source. A decode failure is the only error
// returned; per-rendition failures are reported in the step results.
func (o *Optimizer) Optimize(data []byte) ([]StepResult, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	results := make([]StepResult, 0, 2+len(Breakpoints))

	results = append(results, o.encodeWebP("webp", src, "", o.config.WebPQuality))
	results = append(results, o.encodeAVIF("avif", src))

	for _, bp := range Breakpoints {
		resized := imaging.Fit(src, bp.Width, bp.Height, imaging.Lanczos)
		step := "resize-" + bp.Name
		results = append(results, o.encodeWebP(step, resized, bp.Name, o.config.BreakpointQuality))
	}

	return results, nil
}

func (o *Optimizer) encodeWebP(step string, img image.Image, variant string, quality int) StepResult {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, webp.Options{Quality: quality}); err != nil {
		return StepResult{Step: step, Err: fmt.Errorf("webp encode: %w", err)}
	}
	return StepResult{
		Step: step,
		Rendition: &Rendition{
			Format:  "webp",
			Variant: variant,
			Data:    buf.Bytes(),
			Width:   img.Bounds().Dx(),
			Height:  img.Bounds().Dy(),
		},
	}
}

func (o *Optimizer) encodeAVIF(step string, img image.Image) StepResult {
	var buf bytes.Buffer
	if err := avif.Encode(&buf, img, avif.Options{Quality: o.config.AVIFQuality}); err != nil {
		return StepResult{Step: step, Err: fmt.Errorf("avif encode: %w", err)}
	}
	return StepResult{
		Step: step,
		Rendition: &Rendition{
			Format: "avif",
			Data:   buf.Bytes(),
			Width:  img.Bounds().Dx(),
			Height: img.Bounds().Dy(),
		},
	}
}
