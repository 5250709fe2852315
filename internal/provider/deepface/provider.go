package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"math"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider"
)

const (
	jpegQuality = 90
	maxAge      = 150
)

// AgeOracle implements provider.AgeOracle using the DeepFace age model
type AgeOracle struct {
	client *Client
}

// NewAgeOracle creates a new DeepFace age oracle
func NewAgeOracle(config Config) *AgeOracle {
	return &AgeOracle{
		client: NewClient(config),
	}
}

// ActualAge sends the face crop as JPEG and returns the rounded age of the
// first result
func (o *AgeOracle) ActualAge(ctx context.Context, face image.Image) (int, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, face, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return 0, fmt.Errorf("encode face: %w", err)
	}

	resp, err := o.client.Analyze(ctx, base64.StdEncoding.EncodeToString(buf.Bytes()))
	if err != nil {
		return 0, fmt.Errorf("estimate age: %w", err)
	}
	if len(resp.Results) == 0 {
		return 0, ErrNoFaceInResponse
	}

	age := int(math.Round(resp.Results[0].Age))
	if age < 0 || age > maxAge {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAge, age)
	}
	return age, nil
}

// Ensure AgeOracle implements provider.AgeOracle at compile time
var _ provider.AgeOracle = (*AgeOracle)(nil)
