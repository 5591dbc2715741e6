package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func TestTokenValidUntilExpiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	m := NewTokenManager("secret", 7*24*time.Hour).WithClock(clock.Now)

	token, err := m.Generate("user-1", "alice@example.com")
	require.NoError(t, err)

	user, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	clock.t = clock.t.Add(7*24*time.Hour - time.Minute)
	_, err = m.Validate(token)
	require.NoError(t, err)

	clock.t = clock.t.Add(2 * time.Minute)
	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenRejectsForeignSecretAndGarbage(t *testing.T) {
	issuer := NewTokenManager("one", time.Hour)
	verifier := NewTokenManager("two", time.Hour)

	token, err := issuer.Generate("user-1", "a@b.c")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = verifier.Validate("")
	assert.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenAcceptsBearerPrefix(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)
	token, err := m.Generate("u", "e")
	require.NoError(t, err)

	user, err := m.Validate("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u", user.ID)
}

func TestExtractTokenFromHeader(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"Bearer abc", "abc"},
		{"", ""},
		{"Basic abc", ""},
		{"Bearer", ""},
		{"Bearer a b", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractTokenFromHeader(tt.header), tt.header)
	}
}
