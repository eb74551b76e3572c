package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestServer wires a Server against an in-memory database and registers
// the real route table.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Tag{},
		&models.Comment{},
	))

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	s := &Server{
		config:      testConfig(),
		db:          db,
		userRepo:    userRepo,
		profileRepo: profileRepo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
	s.postService = service.NewPostService(postRepo, userRepo)
	s.profileService = service.NewProfileService(profileRepo, userRepo, postRepo)
	s.commentService = service.NewCommentService(commentRepo, postRepo)

	app := fiber.New()
	s.SetupRoutes(app)
	return s, app, db
}

// signupAndLogin registers a user through the API and returns a valid access
// token. When complete is true the profile is filled in first.
func signupAndLogin(t *testing.T, s *Server, app *fiber.App, username string, complete bool) string {
	t.Helper()

	resp := postJSON(t, app, "/", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "Password123!xyz",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postJSON(t, app, "/login/", map[string]string{
		"username": username,
		"password": "Password123!xyz",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token := body["access"].(string)

	if complete {
		resp := authedJSON(t, app, http.MethodPost, "/create_profile/", token, map[string]string{
			"first_name": "Test",
			"last_name":  "User",
			"gender":     "O",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	}
	return token
}

func authedJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestCreatePostEndpoint(t *testing.T) {
	s, app, _ := newTestServer(t)
	token := signupAndLogin(t, s, app, "writer", true)

	resp := authedJSON(t, app, http.MethodPost, "/create_post/", token, map[string]any{
		"title":   "My First Post",
		"content": "Hello there",
		"tags":    []string{"intro", "golang"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "my-first-post", body["slug"])
	assert.Equal(t, "writer", body["author"])
	assert.ElementsMatch(t, []any{"intro", "golang"}, body["tags"])
}

func TestCreatePostWithoutProfile(t *testing.T) {
	s, app, _ := newTestServer(t)
	token := signupAndLogin(t, s, app, "newbie", false)

	resp := authedJSON(t, app, http.MethodPost, "/create_post/", token, map[string]any{
		"title":   "Too Soon",
		"content": "x",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "You need to complete your profile before creating a post.", body["error"])
}

func TestCreatePostRequiresAuth(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp := authedJSON(t, app, http.MethodPost, "/create_post/", "", map[string]any{
		"title":   "Anon",
		"content": "x",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestPostListAndDetail(t *testing.T) {
	s, app, _ := newTestServer(t)
	token := signupAndLogin(t, s, app, "writer", true)

	for _, p := range []map[string]any{
		{"title": "Go Post", "content": "a", "tags": []string{"golang"}},
		{"title": "Food Post", "content": "b", "tags": []string{"food"}},
	} {
		resp := authedJSON(t, app, http.MethodPost, "/create_post/", token, p)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		_ = resp.Body.Close()
	}

	// Public list with tag filter
	req := httptest.NewRequest(http.MethodGet, "/posts/?tag=GOLANG", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var posts []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&posts))
	_ = resp.Body.Close()
	require.Len(t, posts, 1)
	assert.Equal(t, "Go Post", posts[0]["title"])

	// Public detail
	req = httptest.NewRequest(http.MethodGet, "/posts/go-post/", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Go Post", body["title"])

	// Missing slug
	req = httptest.NewRequest(http.MethodGet, "/posts/missing-slug/", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestEditPostPermissions(t *testing.T) {
	s, app, _ := newTestServer(t)
	owner := signupAndLogin(t, s, app, "owner", true)
	other := signupAndLogin(t, s, app, "other", true)

	resp := authedJSON(t, app, http.MethodPost, "/create_post/", owner, map[string]any{
		"title":   "Guarded",
		"content": "original",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = authedJSON(t, app, http.MethodPatch, "/posts/edit/guarded/", other, map[string]any{
		"title": "Hijacked",
	})
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "You do not have permission to edit this post.", body["error"])

	resp = authedJSON(t, app, http.MethodPatch, "/posts/edit/guarded/", owner, map[string]any{
		"title": "Refined",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "Refined", body["title"])
	assert.Equal(t, "guarded", body["slug"])
	assert.Equal(t, "original", body["content"])
}

func TestDeletePostEndpoint(t *testing.T) {
	s, app, db := newTestServer(t)
	owner := signupAndLogin(t, s, app, "owner", true)
	other := signupAndLogin(t, s, app, "other", true)

	resp := authedJSON(t, app, http.MethodPost, "/create_post/", owner, map[string]any{
		"title":   "Doomed",
		"content": "x",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	_ = resp.Body.Close()

	resp = authedJSON(t, app, http.MethodDelete, "/posts/delete/doomed/", other, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	_ = resp.Body.Close()

	resp = authedJSON(t, app, http.MethodDelete, "/posts/delete/doomed/", owner, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	var count int64
	db.Model(&models.Post{}).Where("slug = ?", "doomed").Count(&count)
	assert.Zero(t, count)
}
