package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("invalid input")))
	assert.Equal(t, KindAuthentication, KindOf(Authentication("no token")))
	assert.Equal(t, KindAuthorization, KindOf(Authorization("admins only")))
	assert.Equal(t, KindNotFound, KindOf(NotFound("post not found")))
	assert.Equal(t, KindConflict, KindOf(Conflict("email already registered")))
	assert.Equal(t, KindInternal, KindOf(errors.New("disk on fire")))
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("submitting post: %w", NotFound("post not found"))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(nil, KindNotFound))
}

func TestValidationFieldsInMessage(t *testing.T) {
	err := Validation("invalid post",
		FieldError{Field: "title", Message: "title is required"},
		FieldError{Field: "category", Message: "category must be Scientific or IT"},
	)
	assert.Equal(t, "invalid post: title, category", err.Error())
}

func TestInternalUnwraps(t *testing.T) {
	cause := errors.New("badger: closed")
	err := Internal(cause)
	assert.ErrorIs(t, err, cause)
}
