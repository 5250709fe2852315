package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Detection
	Detector         string  `envconfig:"DETECTOR" default:"pigo"`
	CascadeDir       string  `envconfig:"CASCADE_DIR" default:"cascade"`
	FaceCascade      string  `envconfig:"FACE_CASCADE" default:"facefinder"`
	EyeCascade       string  `envconfig:"EYE_CASCADE" default:"haarcascade_eye.xml"`
	HaarFaceCascade  string  `envconfig:"HAAR_FACE_CASCADE" default:"haarcascade_frontalface_default.xml"`
	DetectionQuality float64 `envconfig:"DETECTION_QUALITY" default:"5.0"`
	MinFaceSize      int     `envconfig:"MIN_FACE_SIZE" default:"20"`
	OpenCVPoolSize   int     `envconfig:"OPENCV_POOL_SIZE" default:"8"`
	AWSRegion        string  `envconfig:"AWS_REGION" default:"us-east-1"`

	// Age
	AgeOracle   string `envconfig:"AGE_ORACLE" default:"static"`
	ActualAge   int    `envconfig:"ACTUAL_AGE" default:"30"`
	DeepFaceURL string `envconfig:"DEEPFACE_URL" default:"http://localhost:5005"`

	// Limits
	MaxImageSize    int64         `envconfig:"MAX_IMAGE_SIZE" default:"16777216"`
	MaxImagePixels  int           `envconfig:"MAX_IMAGE_PIXELS" default:"40000000"`
	AnalysisTimeout time.Duration `envconfig:"ANALYSIS_TIMEOUT" default:"30s"`

	// Rate limiting per client IP; 0 disables it
	RateLimitMax    int           `envconfig:"RATE_LIMIT_MAX" default:"60"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"1m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// Validate rejects values the engine cannot run with.
func (c *Config) Validate() error {
	if c.MinFaceSize < 1 {
		return fmt.Errorf("MIN_FACE_SIZE must be positive, got %d", c.MinFaceSize)
	}
	if c.ActualAge < 0 || c.ActualAge > 150 {
		return fmt.Errorf("ACTUAL_AGE out of range: %d", c.ActualAge)
	}
	if c.OpenCVPoolSize < 1 {
		return fmt.Errorf("OPENCV_POOL_SIZE must be positive, got %d", c.OpenCVPoolSize)
	}
	if c.MaxImageSize <= 0 || c.MaxImagePixels <= 0 {
		return fmt.Errorf("image limits must be positive")
	}
	if c.RateLimitMax < 0 {
		return fmt.Errorf("RATE_LIMIT_MAX must not be negative, got %d", c.RateLimitMax)
	}
	if c.RateLimitMax > 0 && c.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive when rate limiting is enabled")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
