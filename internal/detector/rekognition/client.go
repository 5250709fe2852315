package rekognition

import (
	"context"
	"errors"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/smithy-go"
)

const (
	errCodeAccessDenied       = "AccessDeniedException"
	errCodeInvalidImageFormat = "InvalidImageFormatException"
	errCodeImageTooLarge      = "ImageTooLargeException"
	errCodeInvalidParameter   = "InvalidParameterException"
	errCodeThroughput         = "ProvisionedThroughputExceededException"
	errCodeThrottling         = "ThrottlingException"
)

// API is the subset of the Rekognition client the detectors use
type API interface {
	DetectFaces(ctx context.Context, params *rekognition.DetectFacesInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectFacesOutput, error)
}

// Client wraps the AWS Rekognition API together with the detector settings
type Client struct {
	rekognition API
	config      Config
}

// NewClient creates a new Rekognition client with the provided configuration
// It uses the AWS default credential chain to authenticate
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewClientWithAPI(rekognition.NewFromConfig(awsCfg), cfg), nil
}

// NewClientWithAPI wraps an existing API implementation
func NewClientWithAPI(api API, cfg Config) *Client {
	return &Client{
		rekognition: api,
		config:      cfg,
	}
}

// mapError translates AWS API error codes into package errors
func mapError(err error) error {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return err
	}

	switch apiErr.ErrorCode() {
	case errCodeAccessDenied:
		return fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.ErrorMessage())
	case errCodeInvalidImageFormat, errCodeImageTooLarge, errCodeInvalidParameter:
		return fmt.Errorf("%w: %s", ErrInvalidImage, apiErr.ErrorMessage())
	case errCodeThroughput, errCodeThrottling:
		return fmt.Errorf("%w: %s", ErrThrottled, apiErr.ErrorMessage())
	}
	return err
}
