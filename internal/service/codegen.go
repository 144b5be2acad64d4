package service

import (
	"context"
	"fmt"

	"github.com/Kakazablone/AssetDome/internal/model"
	"github.com/Kakazablone/AssetDome/internal/repository"
)

const assetCodePrefix = "AS"

// FormatAssetCode renders a sequence value as a public asset code: the "AS"
// prefix followed by at least six zero-padded digits. Values past 999999
// simply widen.
func FormatAssetCode(value int64) string {
	return fmt.Sprintf("%s%06d", assetCodePrefix, value)
}

// CodeGenerator issues asset codes. NextAssetCode must run inside the same
// transaction as the asset insert so a rolled-back creation also rolls back
// the counter; committed codes are never issued twice because the counter
// only moves forward.
type CodeGenerator interface {
	NextAssetCode(ctx context.Context) (string, error)
}

type codeGenerator struct {
	sequences repository.SequenceRepository
}

func NewCodeGenerator(sequences repository.SequenceRepository) CodeGenerator {
	return &codeGenerator{sequences: sequences}
}

func (g *codeGenerator) NextAssetCode(ctx context.Context) (string, error) {
	value, err := g.sequences.Next(ctx, model.SequenceAssetCode)
	if err != nil {
		return "", fmt.Errorf("failed to advance asset code sequence: %w", err)
	}
	return FormatAssetCode(value), nil
}
