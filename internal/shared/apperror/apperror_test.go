package apperror

import (
	"errors"
	"fmt"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errRecipeNotFound = NotFound("RECIPE_NOT_FOUND", "recipe not found")

func TestError_IsMatchesByCode(t *testing.T) {
	wrapped := fmt.Errorf("get recipe: %w", errRecipeNotFound.Wrap(errors.New("no rows")))

	assert.True(t, errors.Is(wrapped, errRecipeNotFound))
	assert.False(t, errors.Is(wrapped, ErrForbidden))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestError_MessageIncludesCause(t *testing.T) {
	err := errRecipeNotFound.Wrap(errors.New("no rows"))
	assert.Equal(t, "recipe not found: no rows", err.Error())
	assert.Equal(t, "recipe not found", errRecipeNotFound.Error())
}

func TestKindOf_PlainErrorIsInternal(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
	assert.Equal(t, KindInternal, KindOf(nil))
}

func TestNewValidation_CollectsFieldDetails(t *testing.T) {
	verr := validation.Errors{
		"name":         errors.New("cannot be blank"),
		"cooking_time": errors.New("must be no less than 1"),
		"text":         nil,
	}

	err := NewValidation(verr)
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.True(t, errors.Is(err, ErrValidation))

	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, map[string]string{
		"name":         "cannot be blank",
		"cooking_time": "must be no less than 1",
	}, e.Details)
}

func TestNewValidation_Nil(t *testing.T) {
	assert.NoError(t, NewValidation(nil))
}

func TestInvalid(t *testing.T) {
	err := Invalid("ingredients", "duplicate ingredient")
	e, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, e.Kind)
	assert.Equal(t, "duplicate ingredient", e.Details["ingredients"])
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "already_exists", KindAlreadyExists.String())
	assert.Equal(t, "internal", KindInternal.String())
}
