package rekognition

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
)

const (
	// maxImageSize is the maximum image size supported by AWS Rekognition (5MB)
	maxImageSize = 5 * 1024 * 1024
)

// NewDetectors builds the face and eye detectors sharing one client
func NewDetectors(ctx context.Context, cfg Config) (detector.Set, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return detector.Set{}, fmt.Errorf("create rekognition client: %w", err)
	}
	return detector.Set{
		Face: NewFaceDetector(client),
		Eye:  NewEyeDetector(client),
	}, nil
}

// FaceDetector returns Rekognition face bounding boxes in pixels
type FaceDetector struct {
	client *Client
}

// NewFaceDetector creates a face detector backed by client
func NewFaceDetector(client *Client) *FaceDetector {
	return &FaceDetector{client: client}
}

// Detect detects faces using the DetectFaces API
// Returns an empty slice if no faces are detected (not an error)
func (d *FaceDetector) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	details, err := d.client.detectFaces(ctx, gray)
	if err != nil {
		return nil, err
	}

	b := gray.Bounds()
	rects := make([]image.Rectangle, 0, len(details))
	for _, detail := range details {
		if r := toPixels(detail.BoundingBox, b); !r.Empty() {
			rects = append(rects, r)
		}
	}
	return rects, nil
}

// EyeDetector builds eye boxes around the eye landmarks of the most
// prominent face Rekognition finds in a face crop
type EyeDetector struct {
	client *Client
}

// NewEyeDetector creates an eye detector backed by client
func NewEyeDetector(client *Client) *EyeDetector {
	return &EyeDetector{client: client}
}

// Detect returns up to two eye boxes, left eye first
func (d *EyeDetector) Detect(ctx context.Context, gray *image.Gray) ([]image.Rectangle, error) {
	details, err := d.client.detectFaces(ctx, gray)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, nil
	}

	b := gray.Bounds()
	best := details[0]
	bestArea := area(toPixels(best.BoundingBox, b))
	for _, detail := range details[1:] {
		if a := area(toPixels(detail.BoundingBox, b)); a > bestArea {
			best, bestArea = detail, a
		}
	}

	faceWidth := float64(toPixels(best.BoundingBox, b).Dx())
	w := int(faceWidth * d.client.config.EyeBoxWidth)
	h := int(faceWidth * d.client.config.EyeBoxHeight)
	if w < 1 || h < 1 {
		return nil, nil
	}

	var rects []image.Rectangle
	for _, want := range []types.LandmarkType{types.LandmarkTypeEyeLeft, types.LandmarkTypeEyeRight} {
		for _, lm := range best.Landmarks {
			if lm.Type != want || lm.X == nil || lm.Y == nil {
				continue
			}
			cx := b.Min.X + int(float64(*lm.X)*float64(b.Dx()))
			cy := b.Min.Y + int(float64(*lm.Y)*float64(b.Dy()))
			r := image.Rect(cx-w/2, cy-h/2, cx-w/2+w, cy-h/2+h).Intersect(b)
			if !r.Empty() {
				rects = append(rects, r)
			}
			break
		}
	}
	return rects, nil
}

// detectFaces encodes gray and calls DetectFaces, filtering by confidence
func (c *Client) detectFaces(ctx context.Context, gray *image.Gray) ([]types.FaceDetail, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("encode image: %w", err)
	}
	if buf.Len() > maxImageSize {
		return nil, fmt.Errorf("%w: image too large (%d bytes, maximum %d)", ErrInvalidImage, buf.Len(), maxImageSize)
	}

	output, err := c.rekognition.DetectFaces(ctx, &rekognition.DetectFacesInput{
		Image: &types.Image{
			Bytes: buf.Bytes(),
		},
		Attributes: []types.Attribute{types.AttributeDefault},
	})
	if err != nil {
		return nil, fmt.Errorf("detect faces: %w", mapError(err))
	}

	details := make([]types.FaceDetail, 0, len(output.FaceDetails))
	for _, detail := range output.FaceDetails {
		if detail.BoundingBox == nil {
			continue
		}
		if aws.ToFloat32(detail.Confidence) < c.config.MinConfidence {
			continue
		}
		details = append(details, detail)
	}
	return details, nil
}

// toPixels converts a ratio bounding box into a pixel rectangle inside bounds
func toPixels(box *types.BoundingBox, bounds image.Rectangle) image.Rectangle {
	if box == nil {
		return image.Rectangle{}
	}
	w, h := float64(bounds.Dx()), float64(bounds.Dy())
	x0 := bounds.Min.X + int(float64(aws.ToFloat32(box.Left))*w)
	y0 := bounds.Min.Y + int(float64(aws.ToFloat32(box.Top))*h)
	x1 := x0 + int(float64(aws.ToFloat32(box.Width))*w)
	y1 := y0 + int(float64(aws.ToFloat32(box.Height))*h)
	return image.Rect(x0, y0, x1, y1).Intersect(bounds)
}

func area(r image.Rectangle) int {
	return r.Dx() * r.Dy()
}

// Ensure detectors implement detector.Detector at compile time
var (
	_ detector.Detector = (*FaceDetector)(nil)
	_ detector.Detector = (*EyeDetector)(nil)
)
