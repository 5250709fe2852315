package face

import (
	"context"
	"fmt"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/config"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/opencv"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/pigo"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/rekognition"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/static"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider/deepface"
)

// DetectorType defines supported detection backends
type DetectorType string

const (
	// DetectorTypePigo is the pure-Go PICO cascade (default, no native deps)
	DetectorTypePigo DetectorType = "pigo"
	// DetectorTypeRekognition is AWS Rekognition (cloud)
	DetectorTypeRekognition DetectorType = "rekognition"
	// DetectorTypeOpenCV is OpenCV Haar cascades (requires -tags opencv)
	DetectorTypeOpenCV DetectorType = "opencv"
	// DetectorTypeStatic treats the whole image as the face (dev/test)
	DetectorTypeStatic DetectorType = "static"
)

// AgeOracleType defines supported sources of the actual age
type AgeOracleType string

const (
	AgeOracleStatic   AgeOracleType = "static"
	AgeOracleDeepFace AgeOracleType = "deepface"
)

// NewDetectors creates the face and eye detectors based on configuration
//
// Environment variables:
//   - DETECTOR: "pigo", "rekognition", "opencv" or "static" (default: "pigo").
//     pigo and static place the eyes geometrically (pigo.EyeLocator) rather
//     than detecting them; opencv and rekognition detect real eye boxes.
//   - CASCADE_DIR, FACE_CASCADE: PICO cascade location
//   - HAAR_FACE_CASCADE, EYE_CASCADE, OPENCV_POOL_SIZE: OpenCV cascades
//   - AWS_REGION: AWS region for Rekognition (default: "us-east-1")
//   - AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY: via AWS SDK credential chain
func NewDetectors(ctx context.Context, cfg *config.Config) (detector.Set, error) {
	detectorType := DetectorType(cfg.Detector)

	switch detectorType {
	case DetectorTypePigo, "":
		return createPigoDetectors(cfg)

	case DetectorTypeRekognition:
		return createRekognitionDetectors(ctx, cfg)

	case DetectorTypeOpenCV:
		return createOpenCVDetectors(ctx, cfg)

	case DetectorTypeStatic:
		return detector.Set{
			Face: static.WholeImage(),
			Eye:  pigo.NewEyeLocator(),
		}, nil

	default:
		return detector.Set{}, fmt.Errorf("unknown detector type: %s (supported: %s, %s, %s, %s)",
			cfg.Detector, DetectorTypePigo, DetectorTypeRekognition, DetectorTypeOpenCV, DetectorTypeStatic)
	}
}

// createPigoDetectors loads the PICO face cascade; eyes come from the
// geometric locator, not from a detector
func createPigoDetectors(cfg *config.Config) (detector.Set, error) {
	pigoConfig := pigo.DefaultConfig()
	pigoConfig.CascadeDir = cfg.CascadeDir
	pigoConfig.FaceCascade = cfg.FaceCascade
	pigoConfig.MinSize = cfg.MinFaceSize
	pigoConfig.QualityThreshold = float32(cfg.DetectionQuality)

	face, err := pigo.NewFaceDetector(pigoConfig)
	if err != nil {
		return detector.Set{}, fmt.Errorf("create pigo detector: %w", err)
	}

	return detector.Set{Face: face, Eye: pigo.NewEyeLocator()}, nil
}

// createRekognitionDetectors creates AWS Rekognition backed detectors
func createRekognitionDetectors(ctx context.Context, cfg *config.Config) (detector.Set, error) {
	rekogConfig := rekognition.DefaultConfig()
	rekogConfig.Region = cfg.AWSRegion

	set, err := rekognition.NewDetectors(ctx, rekogConfig)
	if err != nil {
		return detector.Set{}, fmt.Errorf("create rekognition detectors: %w", err)
	}

	return set, nil
}

// createOpenCVDetectors loads the Haar cascades
func createOpenCVDetectors(ctx context.Context, cfg *config.Config) (detector.Set, error) {
	cvConfig := opencv.DefaultConfig()
	cvConfig.CascadeDir = cfg.CascadeDir
	cvConfig.FaceCascade = cfg.HaarFaceCascade
	cvConfig.EyeCascade = cfg.EyeCascade
	cvConfig.PoolSize = cfg.OpenCVPoolSize
	cvConfig.MinFaceSize = cfg.MinFaceSize

	set, err := opencv.NewDetectors(ctx, cvConfig)
	if err != nil {
		return detector.Set{}, fmt.Errorf("create opencv detectors: %w", err)
	}

	return set, nil
}

// NewAgeOracle creates the actual-age source based on configuration
//
// Environment variables:
//   - AGE_ORACLE: "static" or "deepface" (default: "static")
//   - ACTUAL_AGE: age returned by the static oracle (default: 30)
//   - DEEPFACE_URL: DeepFace API URL (default: "http://localhost:5005")
func NewAgeOracle(cfg *config.Config) (provider.AgeOracle, error) {
	switch AgeOracleType(cfg.AgeOracle) {
	case AgeOracleStatic, "":
		return provider.NewStaticAgeOracle(cfg.ActualAge), nil

	case AgeOracleDeepFace:
		deepfaceConfig := deepface.DefaultConfig()
		if cfg.DeepFaceURL != "" {
			deepfaceConfig.BaseURL = cfg.DeepFaceURL
		}
		return deepface.NewAgeOracle(deepfaceConfig), nil

	default:
		return nil, fmt.Errorf("unknown age oracle: %s (supported: %s, %s)",
			cfg.AgeOracle, AgeOracleStatic, AgeOracleDeepFace)
	}
}
