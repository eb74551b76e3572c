package repository

import (
	"context"
	"testing"

	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	userRepo := NewUserRepository(db)
	ctx := context.Background()

	author := &models.User{Username: "author", Email: "author@example.com", Password: "hash"}
	require.NoError(t, userRepo.Create(ctx, author))
	db.Model(&models.Profile{}).Where("user_id = ?", author.ID).Update("profile_picture", "avatars/a.png")

	t.Run("CreateWithTags", func(t *testing.T) {
		post := &models.Post{UserID: author.ID, Title: "Go Tips", Content: "Use gofmt", Slug: "go-tips"}
		err := repo.Create(ctx, post, []string{"Golang", "golang", "tips"})
		require.NoError(t, err)

		// Case-insensitive matching collapses the duplicate name.
		assert.Len(t, post.Tags, 2)

		var tagCount int64
		db.Model(&models.Tag{}).Count(&tagCount)
		assert.Equal(t, int64(2), tagCount)
	})

	t.Run("DuplicateSlug", func(t *testing.T) {
		post := &models.Post{UserID: author.ID, Title: "Go Tips Again", Content: "x", Slug: "go-tips"}
		err := repo.Create(ctx, post, nil)
		assert.ErrorIs(t, err, ErrSlugTaken)
	})

	t.Run("GetBySlugDecorates", func(t *testing.T) {
		post, err := repo.GetBySlug(ctx, "go-tips")
		require.NoError(t, err)
		assert.Equal(t, "author", post.Author)
		require.NotNil(t, post.AuthorPics)
		assert.Equal(t, "avatars/a.png", *post.AuthorPics)
		assert.ElementsMatch(t, []string{"Golang", "tips"}, post.TagNames)
	})

	t.Run("GetBySlugMissing", func(t *testing.T) {
		_, err := repo.GetBySlug(ctx, "no-such-post")
		require.Error(t, err)
		appErr, ok := err.(*models.AppError)
		require.True(t, ok)
		assert.Equal(t, models.ErrCodeNotFound, appErr.Code)
	})

	t.Run("ListFiltersByTagCaseInsensitive", func(t *testing.T) {
		other := &models.Post{UserID: author.ID, Title: "Cooking", Content: "pasta", Slug: "cooking"}
		require.NoError(t, repo.Create(ctx, other, []string{"food"}))

		posts, err := repo.List(ctx, "GOLANG")
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "go-tips", posts[0].Slug)

		all, err := repo.List(ctx, "")
		require.NoError(t, err)
		assert.Len(t, all, 2)

		none, err := repo.List(ctx, "missing")
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("SlugExists", func(t *testing.T) {
		exists, err := repo.SlugExists(ctx, "go-tips")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.SlugExists(ctx, "go-tips-1")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("UpdateReplacesTags", func(t *testing.T) {
		post, err := repo.GetBySlug(ctx, "go-tips")
		require.NoError(t, err)

		post.Title = "Go Tips, Revised"
		require.NoError(t, repo.Update(ctx, post, []string{"tips", "testing"}))

		updated, err := repo.GetBySlug(ctx, "go-tips")
		require.NoError(t, err)
		assert.Equal(t, "Go Tips, Revised", updated.Title)
		assert.ElementsMatch(t, []string{"tips", "testing"}, updated.TagNames)
	})

	t.Run("UpdateNilTagsKeepsTagSet", func(t *testing.T) {
		post, err := repo.GetBySlug(ctx, "go-tips")
		require.NoError(t, err)

		post.Content = "Use gofmt and go vet"
		require.NoError(t, repo.Update(ctx, post, nil))

		updated, err := repo.GetBySlug(ctx, "go-tips")
		require.NoError(t, err)
		assert.Equal(t, "Use gofmt and go vet", updated.Content)
		assert.ElementsMatch(t, []string{"tips", "testing"}, updated.TagNames)
	})

	t.Run("DeleteRemovesCommentsAndLinks", func(t *testing.T) {
		post, err := repo.GetBySlug(ctx, "go-tips")
		require.NoError(t, err)

		comment := &models.Comment{PostID: post.ID, UserID: author.ID, Text: "nice"}
		require.NoError(t, db.Create(comment).Error)

		require.NoError(t, repo.Delete(ctx, post.ID))

		var count int64
		db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&count)
		assert.Zero(t, count)
		db.Table("post_tags").Where("post_id = ?", post.ID).Count(&count)
		assert.Zero(t, count)

		_, err = repo.GetBySlug(ctx, "go-tips")
		assert.Error(t, err)
	})
}
