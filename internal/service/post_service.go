// Package service implements the business rules on top of the repositories.
package service

import (
	"context"
	"errors"
	"fmt"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/gosimple/slug"
)

// maxSlugAttempts bounds the regenerate-and-retry loop that backstops the
// check-then-insert race on slug uniqueness.
const maxSlugAttempts = 5

// PostService holds the business logic for posts.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// CreatePostInput carries the fields accepted when creating a post.
type CreatePostInput struct {
	UserID  uint
	Title   string
	Content string
	Image   string
	Slug    string
	Tags    []string
}

// UpdatePostInput carries the patchable fields of a post. Nil pointers mean
// "leave unchanged"; a nil Tags slice keeps the existing tag set.
type UpdatePostInput struct {
	UserID  uint
	Slug    string
	Title   *string
	Content *string
	Image   *string
	Tags    []string
}

// NewPostService returns a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// generateSlug derives a URL-safe slug from the title and disambiguates it
// with an incrementing suffix: base, base-1, base-2, ...
func (s *PostService) generateSlug(ctx context.Context, title string) (string, error) {
	base := slug.Make(title)
	if base == "" {
		base = "post"
	}

	candidate := base
	for counter := 1; ; counter++ {
		exists, err := s.postRepo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// CreatePost creates a post for the given user. The user must have a
// completed profile. When no slug is supplied one is generated from the
// title; a unique index plus a retry loop covers the window between the
// existence probe and the insert.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if !user.HasProfile {
		return nil, models.NewForbiddenError("You need to complete your profile before creating a post.")
	}

	if in.Title == "" || in.Content == "" {
		return nil, models.NewValidationError("Title and content are required")
	}
	if len(in.Title) > 100 {
		return nil, models.NewValidationError("Title too long (max 100 characters)")
	}
	if in.Image != "" {
		if err := validation.ValidateImagePath(in.Image); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
	}

	post := &models.Post{
		UserID:  in.UserID,
		Title:   in.Title,
		Content: in.Content,
		Image:   in.Image,
	}

	if in.Slug != "" {
		post.Slug = in.Slug
		if err := s.postRepo.Create(ctx, post, in.Tags); err != nil {
			if errors.Is(err, repository.ErrSlugTaken) {
				return nil, models.NewValidationError("Slug already in use")
			}
			return nil, err
		}
		return s.postRepo.GetBySlug(ctx, post.Slug)
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		generated, err := s.generateSlug(ctx, in.Title)
		if err != nil {
			return nil, err
		}
		post.Slug = generated
		err = s.postRepo.Create(ctx, post, in.Tags)
		if err == nil {
			return s.postRepo.GetBySlug(ctx, post.Slug)
		}
		if !errors.Is(err, repository.ErrSlugTaken) {
			return nil, err
		}
		// Concurrent creation grabbed the slug first; probe again.
	}
	return nil, models.NewInternalError(fmt.Errorf("could not allocate a unique slug after %d attempts", maxSlugAttempts))
}

// GetPost fetches a post by slug.
func (s *PostService) GetPost(ctx context.Context, postSlug string) (*models.Post, error) {
	return s.postRepo.GetBySlug(ctx, postSlug)
}

// ListPosts returns posts newest-first, optionally filtered by tag
// (case-insensitive exact match).
func (s *PostService) ListPosts(ctx context.Context, tag string) ([]*models.Post, error) {
	return s.postRepo.List(ctx, tag)
}

// ListUserPosts returns the given user's posts newest-first.
func (s *PostService) ListUserPosts(ctx context.Context, userID uint) ([]*models.Post, error) {
	return s.postRepo.ListByUserID(ctx, userID)
}

// UpdatePost applies a partial update to the caller's own post. The slug
// never changes.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if post.UserID != in.UserID {
		return nil, models.NewForbiddenError("You do not have permission to edit this post.")
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, models.NewValidationError("Title cannot be empty")
		}
		if len(*in.Title) > 100 {
			return nil, models.NewValidationError("Title too long (max 100 characters)")
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("Content cannot be empty")
		}
		post.Content = *in.Content
	}
	if in.Image != nil {
		if *in.Image != "" {
			if err := validation.ValidateImagePath(*in.Image); err != nil {
				return nil, models.NewValidationError(err.Error())
			}
		}
		post.Image = *in.Image
	}

	if err := s.postRepo.Update(ctx, post, in.Tags); err != nil {
		return nil, err
	}
	return s.postRepo.GetBySlug(ctx, in.Slug)
}

// DeletePost deletes the caller's own post together with its comments and
// tag links.
func (s *PostService) DeletePost(ctx context.Context, userID uint, postSlug string) error {
	post, err := s.postRepo.GetBySlug(ctx, postSlug)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You do not have permission to delete this post.")
	}
	return s.postRepo.Delete(ctx, post.ID)
}
