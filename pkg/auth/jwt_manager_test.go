package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManager_GenerateVerify(t *testing.T) {
	req := require.New(t)
	m := NewJWTManager("secret", time.Hour)

	token, err := m.Generate("user-1")
	req.NoError(err)

	claims, err := m.Verify(token)
	req.NoError(err)
	req.Equal("user-1", claims.Subject)

	exp, err := m.Expiry(token)
	req.NoError(err)
	req.WithinDuration(time.Now().Add(time.Hour), exp, time.Minute)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	token, err := m.Generate("user-1")
	require.NoError(t, err)

	other := NewJWTManager("not-the-secret", time.Hour)
	_, err = other.Verify(token)
	require.Error(t, err)
}

func TestJWTManager_ExpiredToken(t *testing.T) {
	m := NewJWTManager("secret", -time.Minute)
	token, err := m.Generate("user-1")
	require.NoError(t, err)

	_, err = m.Verify(token)
	require.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req := require.New(t)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc123")
	token, err := ExtractTokenFromHeader(r)
	req.NoError(err)
	req.Equal("abc123", token)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Basic abc123")
	_, err = ExtractTokenFromHeader(r)
	req.Error(err)

	r = httptest.NewRequest(http.MethodGet, "/", nil)
	_, err = ExtractTokenFromHeader(r)
	req.Error(err)
}
