package response

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessAndError(t *testing.T) {
	ok := Success(200, "payload")
	assert.Equal(t, "success", ok.Status)
	assert.Equal(t, 200, ok.StatusCode)
	assert.Equal(t, "payload", ok.Data)

	bad := Error(404, "asset not found")
	assert.Equal(t, "error", bad.Status)
	assert.Equal(t, "asset not found", bad.Error)
	assert.Nil(t, bad.Data)
}

func TestInvalidBreaksOutValidatorFields(t *testing.T) {
	type payload struct {
		Description string `validate:"required"`
		AssetType   string `validate:"oneof=MOVABLE IMMOVABLE"`
		Units       int    `validate:"min=1"`
	}

	err := validator.New().Struct(payload{AssetType: "FLYING"})
	require.Error(t, err)

	resp := Invalid(err)
	assert.Equal(t, 400, resp.StatusCode)
	assert.Equal(t, "Invalid request payload", resp.Error)
	assert.Equal(t, "this field is required", resp.Fields["description"])
	assert.Equal(t, "must be one of: MOVABLE, IMMOVABLE", resp.Fields["asset_type"])
	assert.Equal(t, "must be at least 1", resp.Fields["units"])
}

func TestInvalidKeepsNonValidatorMessages(t *testing.T) {
	resp := Invalid(errors.New("unexpected end of JSON input"))
	assert.Contains(t, resp.Error, "unexpected end of JSON input")
	assert.Empty(t, resp.Fields)
}
