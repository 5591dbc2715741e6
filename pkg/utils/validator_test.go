package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email     string `json:"email" validate:"required"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"firstName" validate:"required"`
	Priority  string `json:"priority" validate:"omitempty,oneof=low medium high"`
}

func TestValidationMessageMissingFields(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Email: "a@b.c"})
	require.Error(t, err)

	assert.Equal(t, "password and firstName are required", ValidationMessage(err))
}

func TestValidationMessageSingleField(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Email: "a", Password: "b"})
	require.Error(t, err)
	assert.Equal(t, "firstName is required", ValidationMessage(err))
}

func TestValidationMessageOneOf(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Email: "a", Password: "b", FirstName: "c", Priority: "urgent"})
	require.Error(t, err)
	assert.Equal(t, "priority must be one of: low, medium, high", ValidationMessage(err))
}

func TestValidateStructOK(t *testing.T) {
	assert.NoError(t, ValidateStruct(&sampleRequest{Email: "a", Password: "b", FirstName: "c"}))
}
