package deepface

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"image/color"
	"image/jpeg"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider"
)

// TestAgeOracleImplementsInterface verifies AgeOracle implements provider.AgeOracle
func TestAgeOracleImplementsInterface(t *testing.T) {
	var _ provider.AgeOracle = (*AgeOracle)(nil)
}

func faceCrop() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 160, B: 140, A: 255})
		}
	}
	return img
}

func TestAgeOracle_ActualAge(t *testing.T) {
	tests := []struct {
		name    string
		results []AnalyzeResult
		wantAge int
		wantErr error
	}{
		{
			name:    "rounds the first result",
			results: []AnalyzeResult{{Age: 33.6}, {Age: 70}},
			wantAge: 34,
		},
		{
			name:    "no face",
			results: []AnalyzeResult{},
			wantErr: ErrNoFaceInResponse,
		},
		{
			name:    "implausible age",
			results: []AnalyzeResult{{Age: -3}},
			wantErr: ErrInvalidAge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var req AnalyzeRequest
				require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

				raw, err := base64.StdEncoding.DecodeString(req.Img)
				require.NoError(t, err)
				_, err = jpeg.Decode(bytes.NewReader(raw))
				require.NoError(t, err, "oracle must send a JPEG")

				_ = json.NewEncoder(w).Encode(AnalyzeResponse{Results: tt.results})
			}))
			defer server.Close()

			config := DefaultConfig()
			config.BaseURL = server.URL
			config.RetryCount = 0

			age, err := NewAgeOracle(config).ActualAge(context.Background(), faceCrop())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAge, age)
		})
	}
}

func TestAgeOracle_ServiceDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RetryCount = 0

	_, err := NewAgeOracle(config).ActualAge(context.Background(), faceCrop())
	assert.ErrorIs(t, err, ErrDeepFaceUnavailable)
}
