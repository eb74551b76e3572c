package service

import (
	"context"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Post{},
		&models.Tag{},
		&models.Comment{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string, hasProfile bool) *models.User {
	t.Helper()
	userRepo := repository.NewUserRepository(db)
	user := &models.User{Username: username, Email: username + "@example.com", Password: "hash"}
	require.NoError(t, userRepo.Create(context.Background(), user))
	if hasProfile {
		user.HasProfile = true
		require.NoError(t, userRepo.Update(context.Background(), user))
	}
	return user
}

func newPostService(db *gorm.DB) *PostService {
	return NewPostService(repository.NewPostRepository(db), repository.NewUserRepository(db))
}

func TestCreatePostSlugGeneration(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author", true)

	first, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Hello World", Content: "one",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", first.Slug)

	second, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Hello World", Content: "two",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-1", second.Slug)

	third, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Hello World", Content: "three",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world-2", third.Slug)
}

func TestCreatePostRequiresProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	newbie := createTestUser(t, db, "newbie", false)

	_, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: newbie.ID, Title: "Nope", Content: "nope",
	})
	require.Error(t, err)

	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.ErrCodeForbidden, appErr.Code)
	assert.Equal(t, "You need to complete your profile before creating a post.", appErr.Message)
}

func TestCreatePostValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author", true)

	tests := []struct {
		name  string
		input CreatePostInput
	}{
		{"MissingTitle", CreatePostInput{UserID: author.ID, Content: "body"}},
		{"MissingContent", CreatePostInput{UserID: author.ID, Title: "title"}},
		{"BadImageExtension", CreatePostInput{UserID: author.ID, Title: "t", Content: "c", Image: "file.gif"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreatePost(ctx, tt.input)
			require.Error(t, err)
			appErr, ok := err.(*models.AppError)
			require.True(t, ok)
			assert.Equal(t, models.ErrCodeValidation, appErr.Code)
		})
	}
}

func TestCreatePostExplicitSlugConflict(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author", true)

	_, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Taken", Content: "x", Slug: "taken",
	})
	require.NoError(t, err)

	_, err = svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Other", Content: "y", Slug: "taken",
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.ErrCodeValidation, appErr.Code)
	assert.Equal(t, "Slug already in use", appErr.Message)
}

func TestUpdatePostOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author", true)
	intruder := createTestUser(t, db, "intruder", true)

	post, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Mine", Content: "original", Tags: []string{"go"},
	})
	require.NoError(t, err)

	newTitle := "Still Mine"
	_, err = svc.UpdatePost(ctx, UpdatePostInput{
		UserID: intruder.ID, Slug: post.Slug, Title: &newTitle,
	})
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.ErrCodeForbidden, appErr.Code)
	assert.Equal(t, "You do not have permission to edit this post.", appErr.Message)

	updated, err := svc.UpdatePost(ctx, UpdatePostInput{
		UserID: author.ID, Slug: post.Slug, Title: &newTitle, Tags: []string{"golang", "blogging"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Still Mine", updated.Title)
	assert.Equal(t, post.Slug, updated.Slug)
	assert.ElementsMatch(t, []string{"golang", "blogging"}, updated.TagNames)
	// Content untouched by the partial update.
	assert.Equal(t, "original", updated.Content)
}

func TestDeletePostOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author", true)
	intruder := createTestUser(t, db, "intruder", true)

	post, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "Ephemeral", Content: "x",
	})
	require.NoError(t, err)

	err = svc.DeletePost(ctx, intruder.ID, post.Slug)
	require.Error(t, err)
	appErr, ok := err.(*models.AppError)
	require.True(t, ok)
	assert.Equal(t, models.ErrCodeForbidden, appErr.Code)
	assert.Equal(t, "You do not have permission to delete this post.", appErr.Message)

	require.NoError(t, svc.DeletePost(ctx, author.ID, post.Slug))

	_, err = svc.GetPost(ctx, post.Slug)
	assert.Error(t, err)
}

func TestListPostsTagFilter(t *testing.T) {
	db := setupTestDB(t)
	svc := newPostService(db)
	ctx := context.Background()
	author := createTestUser(t, db, "author", true)

	_, err := svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "About Go", Content: "x", Tags: []string{"Golang"},
	})
	require.NoError(t, err)
	_, err = svc.CreatePost(ctx, CreatePostInput{
		UserID: author.ID, Title: "About Food", Content: "y", Tags: []string{"food"},
	})
	require.NoError(t, err)

	posts, err := svc.ListPosts(ctx, "golang")
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "About Go", posts[0].Title)

	all, err := svc.ListPosts(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
