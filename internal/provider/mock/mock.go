package mock

import (
	"context"
	"image"

	"github.com/stretchr/testify/mock"

	"github.com/saturnino-fabrica-de-software/skinscan/internal/provider"
)

// AgeOracle implementa provider.AgeOracle para testes
type AgeOracle struct {
	mock.Mock
}

// New cria uma nova instância do mock
func New() *AgeOracle {
	return &AgeOracle{}
}

// ActualAge retorna o que foi configurado via On("ActualAge", ...)
func (m *AgeOracle) ActualAge(ctx context.Context, face image.Image) (int, error) {
	args := m.Called(ctx, face)
	return args.Int(0), args.Error(1)
}

var _ provider.AgeOracle = (*AgeOracle)(nil)
