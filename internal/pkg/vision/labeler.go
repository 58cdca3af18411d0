package vision

import (
	"context"
	"encoding/base64"
	"fmt"

	"google.golang.org/api/option"
	vision "google.golang.org/api/vision/v1"
)

// Label is one AI-detected label with its confidence score
type Label struct {
	Description string  `json:"description"`
	Score       float64 `json:"score"`
}

// Labeler detects content labels for an image buffer
type Labeler interface {
	DetectLabels(ctx context.Context, data []byte) ([]Label, error)
}

// GoogleLabeler implements Labeler using the Cloud Vision API
type GoogleLabeler struct {
	svc        *vision.Service
	maxResults int64
}

// NewGoogleLabeler creates a Vision API labeler
func NewGoogleLabeler(ctx context.Context, apiKey string) (*GoogleLabeler, error) {
	svc, err := vision.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create vision service: %w", err)
	}
	return &GoogleLabeler{svc: svc, maxResults: 10}, nil
}

// DetectLabels runs label detection on the image
func (g *GoogleLabeler) DetectLabels(ctx context.Context, data []byte) ([]Label, error) {
	req := &vision.BatchAnnotateImagesRequest{
		Requests: []*vision.AnnotateImageRequest{
			{
				Image: &vision.Image{Content: base64.StdEncoding.EncodeToString(data)},
				Features: []*vision.Feature{
					{Type: "LABEL_DETECTION", MaxResults: g.maxResults},
				},
			},
		},
	}

	res, err := g.svc.Images.Annotate(req).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("vision annotate: %w", err)
	}
	if len(res.Responses) == 0 {
		return nil, nil
	}
	if apiErr := res.Responses[0].Error; apiErr != nil {
		return nil, fmt.Errorf("vision annotate: %s", apiErr.Message)
	}

	annotations := res.Responses[0].LabelAnnotations
	labels := make([]Label, 0, len(annotations))
	for _, a := range annotations {
		labels = append(labels, Label{Description: a.Description, Score: a.Score})
	}
	return labels, nil
}
