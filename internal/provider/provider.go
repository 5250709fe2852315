package provider

import (
	"context"
	"image"
)

// DefaultActualAge é a idade usada quando nenhuma outra fonte está disponível
const DefaultActualAge = 30

// AgeOracle fornece a idade cronológica do sujeito de uma face recortada
type AgeOracle interface {
	// ActualAge retorna a idade em anos para a face informada
	ActualAge(ctx context.Context, face image.Image) (int, error)
}

// StaticAgeOracle retorna sempre a mesma idade
type StaticAgeOracle struct {
	Age int
}

// NewStaticAgeOracle cria um oracle com idade fixa
func NewStaticAgeOracle(age int) StaticAgeOracle {
	return StaticAgeOracle{Age: age}
}

// ActualAge ignora a imagem e retorna a idade configurada
func (o StaticAgeOracle) ActualAge(ctx context.Context, face image.Image) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return o.Age, nil
}

var _ AgeOracle = StaticAgeOracle{}
