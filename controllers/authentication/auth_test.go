package authentication

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mentorlink-backend/models/users"
)

func TestValidateToken_BearerHeader(t *testing.T) {
	user := &users.User{ID: 42, Email: "alice@example.com", Role: users.RoleMentor}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.Header.Set("Authorization", "Bearer "+token)

	claims, err := ValidateToken(r)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.Equal(t, users.RoleMentor, claims.Role)
}

func TestValidateToken_Cookie(t *testing.T) {
	user := &users.User{ID: 7, Email: "bob@example.com", Role: users.RoleUser}
	token, err := GenerateToken(user)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodGet, "/notifications", nil)
	r.AddCookie(&http.Cookie{Name: "token", Value: token})

	claims, err := ValidateToken(r)
	require.NoError(t, err)
	assert.EqualValues(t, 7, claims.UserID)
}

func TestValidateToken_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	_, err := ValidateToken(r)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/profile", nil)
	r.Header.Set("Authorization", "Bearer not-a-token")
	_, err := ValidateToken(r)
	assert.Error(t, err)
}
