package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserError(t *testing.T) {
	err := NewUserError("config file is unreadable", ErrInvalidConfig)

	assert.Equal(t, "config file is unreadable: invalid configuration", err.Error())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	var userErr *UserError
	assert.True(t, errors.As(err, &userErr))
	assert.Equal(t, "config file is unreadable", userErr.UserMessage)
}

func TestUserError_NoWrapped(t *testing.T) {
	err := NewUserError("nothing to do", nil)
	assert.Equal(t, "nothing to do", err.Error())
}
