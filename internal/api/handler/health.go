package handler

import (
	"github.com/gofiber/fiber/v2"
)

// Version of the service reported by /health
const Version = "0.1.0"

type HealthHandler struct {
	detector  string
	ageOracle string
}

// NewHealthHandler reports the configured detection backend and age oracle
// on /ready.
func NewHealthHandler(detector, ageOracle string) *HealthHandler {
	return &HealthHandler{
		detector:  detector,
		ageOracle: ageOracle,
	}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version,omitempty"`
	Detector  string `json:"detector,omitempty"`
	AgeOracle string `json:"age_oracle,omitempty"`
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Version: Version,
	})
}

// Ready answers once the detectors are loaded, which happens before the
// router is built.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:    "ready",
		Detector:  h.detector,
		AgeOracle: h.ageOracle,
	})
}
