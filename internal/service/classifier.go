package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/smartrecipe/backend/internal/dictionary"
)

// Detection is one classification result from the external model.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// ClassifierService forwards images to the external classification service.
// Detection is entirely delegated; this service only carries bytes out and
// labels back. A nil service means no classifier is configured and clients
// must submit labels they detected themselves.
type ClassifierService struct {
	client *resty.Client
	url    string
}

// NewClassifierService returns nil when no URL is configured.
func NewClassifierService(url string, timeout time.Duration) *ClassifierService {
	if url == "" {
		return nil
	}
	client := resty.New().SetTimeout(timeout)
	return &ClassifierService{client: client, url: url}
}

// Classify posts the image and returns the raw detections.
func (s *ClassifierService) Classify(ctx context.Context, image []byte, filename string) ([]Detection, error) {
	var detections []Detection
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("image", filename, bytes.NewReader(image)).
		SetResult(&detections).
		Post(s.url)
	if err != nil {
		return nil, fmt.Errorf("classifier request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode())
	}
	return detections, nil
}

// MapDetections resolves detections to canonical ingredient names through
// the dictionary, dropping unmapped labels and duplicates while preserving
// detection order.
func MapDetections(detections []Detection) []string {
	seen := make(map[string]bool, len(detections))
	ingredients := make([]string, 0, len(detections))
	for _, d := range detections {
		ing, ok := dictionary.Lookup(d.Label)
		if !ok || seen[ing] {
			continue
		}
		seen[ing] = true
		ingredients = append(ingredients, ing)
	}
	return ingredients
}
