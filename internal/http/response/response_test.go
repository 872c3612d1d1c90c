package response

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOK(t *testing.T) {
	resp := OK()
	assert.Equal(t, StatusOK, resp.Status)
	assert.Empty(t, resp.Error)
	assert.Nil(t, resp.Data)
}

func TestOKWithData(t *testing.T) {
	resp := OKWithData(map[string]any{"id": "42"})
	assert.Equal(t, StatusOK, resp.Status)
	assert.Equal(t, map[string]any{"id": "42"}, resp.Data)
}

func TestError(t *testing.T) {
	resp := Error("something went wrong")
	assert.Equal(t, StatusError, resp.Status)
	assert.Equal(t, "something went wrong", resp.Error)
}

func TestValidationError(t *testing.T) {
	type request struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
		Phone string `validate:"omitempty,e164"`
		Days  int    `validate:"omitempty,gt=0"`
	}

	validate := validator.New()
	err := validate.Struct(request{Email: "not-an-email", Phone: "12345", Days: -1})
	require.Error(t, err)

	resp := ValidationError(err.(validator.ValidationErrors))
	assert.Equal(t, StatusError, resp.Status)
	assert.Contains(t, resp.Error, "field Name is a required field")
	assert.Contains(t, resp.Error, "field Email must be a valid email")
	assert.Contains(t, resp.Error, "field Phone must be a phone in E.164 format")
	assert.Contains(t, resp.Error, "field Days must be greater than 0")
}
