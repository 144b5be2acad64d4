package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAssetCode(t *testing.T) {
	tests := []struct {
		value int64
		want  string
	}{
		{1, "AS000001"},
		{42, "AS000042"},
		{999999, "AS999999"},
		{1000000, "AS1000000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatAssetCode(tt.value))
	}
}

func TestNextAssetCode(t *testing.T) {
	var askedFor string
	sequences := &MockSequenceRepository{
		NextFunc: func(ctx context.Context, name string) (int64, error) {
			askedFor = name
			return 7, nil
		},
	}

	code, err := NewCodeGenerator(sequences).NextAssetCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AS000007", code)
	assert.Equal(t, model.SequenceAssetCode, askedFor)
}

func TestNextAssetCodeSequenceFailure(t *testing.T) {
	dbErr := errors.New("connection reset")
	sequences := &MockSequenceRepository{
		NextFunc: func(ctx context.Context, name string) (int64, error) {
			return 0, dbErr
		},
	}

	_, err := NewCodeGenerator(sequences).NextAssetCode(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
	assert.Contains(t, err.Error(), "asset code sequence")
}
