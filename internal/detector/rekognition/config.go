package rekognition

// Config holds configuration for the AWS Rekognition detector
type Config struct {
	// Region is the AWS region where Rekognition service will be used (e.g., "us-east-1")
	Region string

	// MinConfidence drops face details Rekognition scores below it (0-100)
	MinConfidence float32

	// EyeBoxWidth and EyeBoxHeight size the eye boxes built around the eye
	// landmarks, as fractions of the face box width
	EyeBoxWidth  float64
	EyeBoxHeight float64
}

// DefaultConfig returns a Config with default values
func DefaultConfig() Config {
	return Config{
		Region:        "us-east-1",
		MinConfidence: 90,
		EyeBoxWidth:   0.30,
		EyeBoxHeight:  0.18,
	}
}
