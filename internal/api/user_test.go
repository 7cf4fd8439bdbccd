package api_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipe-api/backend/internal/models"
	"github.com/recipe-api/backend/internal/types"
)

const (
	createUserURL = "/api/user/create/"
	tokenURL      = "/api/user/token/"
	meURL         = "/api/user/me/"
	logoutURL     = "/api/user/logout/"
)

func TestCreateUser(t *testing.T) {
	a := setupAPI(t)

	w := a.do(http.MethodPost, createUserURL, map[string]string{
		"email":    "test@EXAMPLE.com",
		"password": "testpass123",
		"name":     "Test Name",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	resp := decode[map[string]interface{}](t, w)
	assert.Equal(t, "test@example.com", resp["email"])
	assert.Equal(t, "Test Name", resp["name"])
	assert.NotContains(t, resp, "password")

	var user models.User
	require.NoError(t, a.db.Where("email = ?", "test@example.com").First(&user).Error)
	assert.True(t, user.CheckPassword("testpass123"))
}

func TestCreateUserValidation(t *testing.T) {
	a := setupAPI(t)
	a.login(t, "test@example.com")

	tests := []struct {
		name  string
		body  map[string]string
		field string
	}{
		{"duplicate email", map[string]string{"email": "test@example.com", "password": "testpass123", "name": "Test"}, "email"},
		{"password too short", map[string]string{"email": "short@example.com", "password": "pw", "name": "Test"}, "password"},
		{"missing email", map[string]string{"password": "testpass123", "name": "Test"}, "email"},
		{"invalid email", map[string]string{"email": "not-an-email", "password": "testpass123", "name": "Test"}, "email"},
		{"missing name", map[string]string{"email": "noname@example.com", "password": "testpass123"}, "name"},
		{"blank name", map[string]string{"email": "blank@example.com", "password": "testpass123", "name": "  "}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, createUserURL, tt.body, "")
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			resp := decode[types.ErrorResponse](t, w)
			assert.Contains(t, resp.Fields, tt.field)
		})
	}

	var count int64
	require.NoError(t, a.db.Model(&models.User{}).
		Where("email IN ?", []string{"short@example.com", "noname@example.com", "blank@example.com"}).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateToken(t *testing.T) {
	a := setupAPI(t)
	a.login(t, "test@example.com")

	w := a.do(http.MethodPost, tokenURL, map[string]string{
		"email":    "test@example.com",
		"password": "testpass123",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token := decode[types.TokenResponse](t, w).Token
	require.NotEmpty(t, token)

	// the issued token authenticates
	w = a.do(http.MethodGet, meURL, nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateTokenRejected(t *testing.T) {
	a := setupAPI(t)
	a.login(t, "test@example.com")

	tests := []struct {
		name string
		body map[string]string
	}{
		{"bad credentials", map[string]string{"email": "test@example.com", "password": "wrongpass"}},
		{"unknown user", map[string]string{"email": "nobody@example.com", "password": "testpass123"}},
		{"blank password", map[string]string{"email": "test@example.com", "password": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := a.do(http.MethodPost, tokenURL, tt.body, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.NotContains(t, w.Body.String(), "token\":")
		})
	}
}

func TestMeRequiresAuth(t *testing.T) {
	a := setupAPI(t)

	w := a.do(http.MethodGet, meURL, nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, meURL, nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRetrieveMe(t *testing.T) {
	a := setupAPI(t)
	_, token := a.login(t, "test@example.com")

	w := a.do(http.MethodGet, meURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, types.UserResponse{Email: "test@example.com", Name: "Test Name"}, decode[types.UserResponse](t, w))
}

func TestMeTokenScheme(t *testing.T) {
	a := setupAPI(t)
	_, token := a.login(t, "test@example.com")

	// "Token <key>" is accepted as well as "Bearer <key>"
	w := a.doWithHeader(http.MethodGet, meURL, "Authorization", "Token "+token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = a.doWithHeader(http.MethodGet, meURL, "Authorization", "Basic "+token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPostMeNotAllowed(t *testing.T) {
	a := setupAPI(t)
	_, token := a.login(t, "test@example.com")

	w := a.do(http.MethodPost, meURL, map[string]string{}, token)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestUpdateMe(t *testing.T) {
	a := setupAPI(t)
	user, token := a.login(t, "test@example.com")

	w := a.do(http.MethodPatch, meURL, map[string]string{
		"name":     "Updated Name",
		"password": "newpassword123",
	}, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Updated Name", decode[types.UserResponse](t, w).Name)

	var reloaded models.User
	require.NoError(t, a.db.First(&reloaded, user.ID).Error)
	assert.Equal(t, "Updated Name", reloaded.Name)
	assert.True(t, reloaded.CheckPassword("newpassword123"))

	w = a.do(http.MethodPatch, meURL, map[string]string{"name": " "}, token)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode[types.ErrorResponse](t, w).Fields, "name")
}

func TestReplaceMe(t *testing.T) {
	a := setupAPI(t)
	a.login(t, "taken@example.com")
	_, token := a.login(t, "test@example.com")

	t.Run("requires email and password", func(t *testing.T) {
		w := a.do(http.MethodPut, meURL, map[string]string{"name": "Only Name"}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		resp := decode[types.ErrorResponse](t, w)
		assert.Contains(t, resp.Fields, "email")
		assert.Contains(t, resp.Fields, "password")
		assert.NotContains(t, resp.Fields, "name")
	})

	t.Run("requires a name", func(t *testing.T) {
		for _, body := range []map[string]string{
			{"email": "new@example.com", "password": "newpassword123"},
			{"email": "new@example.com", "password": "newpassword123", "name": ""},
		} {
			w := a.do(http.MethodPut, meURL, body, token)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Contains(t, decode[types.ErrorResponse](t, w).Fields, "name")
		}

		var count int64
		require.NoError(t, a.db.Model(&models.User{}).Where("email = ?", "new@example.com").Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("rejects an email in use", func(t *testing.T) {
		w := a.do(http.MethodPut, meURL, map[string]string{
			"email":    "taken@example.com",
			"password": "newpassword123",
			"name":     "Taken",
		}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[types.ErrorResponse](t, w).Fields, "email")
	})

	t.Run("replaces the details", func(t *testing.T) {
		w := a.do(http.MethodPut, meURL, map[string]string{
			"email":    "new@example.com",
			"password": "newpassword123",
			"name":     "New Name",
		}, token)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, types.UserResponse{Email: "new@example.com", Name: "New Name"}, decode[types.UserResponse](t, w))
	})
}

func TestLogoutRevokesToken(t *testing.T) {
	a := setupAPI(t)
	_, token := a.login(t, "test@example.com")

	w := a.do(http.MethodPost, logoutURL, nil, token)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, meURL, nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
