package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileLifecycle(t *testing.T) {
	s, app, _ := newTestServer(t)
	token := signupAndLogin(t, s, app, "casey", false)

	t.Run("CheckProfileIncomplete", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodGet, "/check-profile/", token, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "You need to complete your profile before creating a post.", body["error"])
	})

	t.Run("DashboardRedirectsWhenIncomplete", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodGet, "/dashboard/", token, nil)
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "/create_profile/", body["redirect_url"])
	})

	t.Run("GetOwnProfileStartsEmpty", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodGet, "/create_profile/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "", body["first_name"])
		assert.Equal(t, "casey@example.com", body["email"])
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodPost, "/create_profile/", token, map[string]string{
			"first_name":   "Casey",
			"gender":       "O",
			"city":         "Oslo",
			"phone_number": "+4791234567",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Casey", body["first_name"])
		assert.Equal(t, "Oslo", body["city"])
	})

	t.Run("CheckProfileNowComplete", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodGet, "/check-profile/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, true, body["has_profile"])
	})

	t.Run("DashboardComplete", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodGet, "/dashboard/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Contains(t, body, "profile")
		assert.Contains(t, body, "posts")
	})

	t.Run("InvalidGenderRejected", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodPost, "/create_profile/", token, map[string]string{
			"gender": "Q",
		})
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeBody(t, resp)
		fields, ok := body["fields"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, fields, "gender")
	})

	t.Run("CurrentUser", func(t *testing.T) {
		resp := authedJSON(t, app, http.MethodGet, "/auth/user/", token, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "casey", body["username"])
		assert.Equal(t, "casey@example.com", body["email"])
	})
}

func TestPublicProfileEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t)
	token := signupAndLogin(t, s, app, "blake", true)

	resp := authedJSON(t, app, http.MethodPost, "/create_post/", token, map[string]any{
		"title":   "Visible",
		"content": "x",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	// No auth header needed.
	req := httptest.NewRequest(http.MethodGet, "/profile/blake/", nil)
	got, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, got.StatusCode)
	body := decodeBody(t, got)
	assert.Contains(t, body, "profile")
	posts, ok := body["posts"].([]any)
	require.True(t, ok)
	assert.Len(t, posts, 1)

	req = httptest.NewRequest(http.MethodGet, "/profile/nobody/", nil)
	missing, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	_ = missing.Body.Close()
}
