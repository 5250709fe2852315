//go:build integration

package api

import (
	"context"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/analyzer"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/pigo"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/detector/static"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/domain"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/imaging"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider/deepface"
	"github.com/saturnino-fabrica-de-software/skinscan/internal/service"
)

var deepFaceURL string

func TestMain(m *testing.M) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "serengil/deepface",
		ExposedPorts: []string{"5000/tcp"},
		WaitingFor: wait.ForHTTP("/").
			WithPort("5000/tcp").
			WithStartupTimeout(5 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		fmt.Printf("Failed to start container: %v\n", err)
		os.Exit(1)
	}

	host, _ := container.Host(ctx)
	port, _ := container.MappedPort(ctx, "5000")
	deepFaceURL = fmt.Sprintf("http://%s:%s", host, port.Port())

	code := m.Run()

	if err := container.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate container: %v\n", err)
	}
	os.Exit(code)
}

func newDeepFaceRouter(t *testing.T) *Router {
	t.Helper()

	cfg := deepface.DefaultConfig()
	cfg.BaseURL = deepFaceURL
	cfg.RetryCount = 1

	engine := analyzer.NewEngine(
		detector.Set{Face: static.WholeImage(), Eye: pigo.NewEyeLocator()},
		analyzer.WithAgeOracle(deepface.NewAgeOracle(cfg)),
		analyzer.WithLogger(testLogger()),
	)
	svc := service.NewAnalysisService(engine, imaging.NewDecoder(0), testLogger()).WithTimeout(2 * time.Minute)

	router := NewRouter(testLogger(), &Dependencies{
		Analysis:  svc,
		Detector:  "static",
		AgeOracle: "deepface",
		RateLimit: middleware.RateLimiterConfig{},
	})
	router.Setup()
	t.Cleanup(func() { _ = router.Shutdown() })
	return router
}

func TestIntegration_AnalyzeWithDeepFaceAge(t *testing.T) {
	router := newDeepFaceRouter(t)

	body, contentType := multipartPNG(t, 224, 224, color.RGBA{150, 150, 150, 255}, "")
	req := httptest.NewRequest("POST", "/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := router.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var report domain.SkinReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))

	ages := report.Analysis.AgeAnalysis
	assert.GreaterOrEqual(t, ages.ActualAge, 0)
	assert.LessOrEqual(t, ages.ActualAge, analyzer.MaxAge)
	assert.GreaterOrEqual(t, ages.PerceivedAge, ages.ActualAge-5)
	assert.LessOrEqual(t, ages.PerceivedAge, ages.ActualAge+15)
}

func TestIntegration_ExplicitAgeSkipsOracle(t *testing.T) {
	router := newDeepFaceRouter(t)

	body, contentType := multipartPNG(t, 128, 128, color.RGBA{150, 150, 150, 255}, "61")
	req := httptest.NewRequest("POST", "/v1/analyze", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := router.App().Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var report domain.SkinReport
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&report))
	assert.Equal(t, 61, report.Analysis.AgeAnalysis.ActualAge)
}
