package llm

import (
	"context"
	"errors"
)

// ImageClient abstracts image-generation providers.
type ImageClient interface {
	// GenerateImage returns a base64-encoded PNG for the given input, or an
	// empty string when the provider produced no image.
	GenerateImage(ctx context.Context, input GenerateInput) (string, error)
}

// GenerateInput captures the inputs needed for image generation.
type GenerateInput struct {
	Prompt  string
	Size    string
	Quality string
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("image generation not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

// GenerateImage returns ErrNotImplemented.
func (PlaceholderClient) GenerateImage(ctx context.Context, input GenerateInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}
