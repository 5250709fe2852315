package provider

import (
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticAgeOracle(t *testing.T) {
	oracle := NewStaticAgeOracle(DefaultActualAge)

	age, err := oracle.ActualAge(context.Background(), image.NewGray(image.Rect(0, 0, 1, 1)))
	require.NoError(t, err)
	assert.Equal(t, 30, age)

	age, err = NewStaticAgeOracle(42).ActualAge(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 42, age)
}

func TestStaticAgeOracle_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewStaticAgeOracle(30).ActualAge(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
