package repository

import (
	"context"
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ErrSlugTaken signals a unique-constraint conflict on the slug column so
// the service layer can regenerate and retry.
var ErrSlugTaken = errors.New("slug already taken")

// PostRepository defines persistence operations for posts and their tags.
type PostRepository interface {
	// Create persists the post and attaches the given tags, creating
	// missing tags on demand, all in one transaction.
	Create(ctx context.Context, post *models.Post, tagNames []string) error
	GetBySlug(ctx context.Context, slug string) (*models.Post, error)
	// List returns posts newest-first, optionally filtered by an exact
	// case-insensitive tag name.
	List(ctx context.Context, tag string) ([]*models.Post, error)
	ListByUserID(ctx context.Context, userID uint) ([]*models.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// Update saves the post; when tagNames is non-nil the tag set is
	// replaced with it.
	Update(ctx context.Context, post *models.Post, tagNames []string) error
	// Delete removes the post, its comments and its tag links in one
	// transaction.
	Delete(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// upsertTags resolves tag names to Tag rows, matching case-insensitively
// and creating missing tags.
func upsertTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		var tag models.Tag
		err := tx.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		if seen[tag.Name] {
			continue
		}
		seen[tag.Name] = true
		tags = append(tags, tag)
	}
	return tags, nil
}

func (r *postRepository) Create(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := upsertTags(tx, tagNames)
		if err != nil {
			return err
		}
		post.Tags = tags
		return tx.Create(post).Error
	})
	if err != nil {
		if isUniqueConstraintError(err) {
			return ErrSlugTaken
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) GetBySlug(ctx context.Context, slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Preload("Tags").
		Where("slug = ?", slug).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", slug)
		}
		return nil, models.NewInternalError(err)
	}
	post.Decorate()
	return &post, nil
}

func (r *postRepository) List(ctx context.Context, tag string) ([]*models.Post, error) {
	var posts []*models.Post
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Preload("Tags").
		Order("posts.created_at DESC")

	if tag != "" {
		query = query.
			Joins("JOIN post_tags ON post_tags.post_id = posts.id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("LOWER(tags.name) = LOWER(?)", tag)
	}

	if err := query.Find(&posts).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, p := range posts {
		p.Decorate()
	}
	return posts, nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID uint) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("User.Profile").
		Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, p := range posts {
		p.Decorate()
	}
	return posts, nil
}

func (r *postRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, models.NewInternalError(err)
	}
	return count > 0, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post, tagNames []string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tagNames != nil {
			tags, err := upsertTags(tx, tagNames)
			if err != nil {
				return err
			}
			if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
				return err
			}
			post.Tags = tags
		}
		return tx.Omit("Tags").Save(post).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM post_tags WHERE post_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
