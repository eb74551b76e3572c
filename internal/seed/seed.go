// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"inkwell/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

var tagPool = []string{
	"technology", "programming", "golang", "travel", "food", "music",
	"books", "fitness", "photography", "science", "history", "art",
	"gardening", "finance", "gaming", "movies",
}

// Seed populates the database with test data. All seeded users share the
// password "Password123!xyz".
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)
	gofakeit.Seed(time.Now().UnixNano())

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("%d test users created", len(users))

	tags, err := createTags(db)
	if err != nil {
		return fmt.Errorf("failed to create tags: %w", err)
	}

	posts, err := createPosts(db, users, tags, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("%d posts created", len(posts))

	if err := createComments(db, users, posts); err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE comments, post_tags, posts, tags, profiles, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}

func createUsers(db *gorm.DB, count int) ([]*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!xyz"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	genders := []models.Gender{models.GenderMale, models.GenderFemale, models.GenderOther}

	users := make([]*models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		username := strings.ToLower(fmt.Sprintf("%s_%s%d", first, last, r.Intn(1000)))

		user := &models.User{
			Username: username,
			Email:    fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			Password: string(hashed),
		}
		if err := db.Create(user).Error; err != nil {
			return nil, err
		}

		profile := &models.Profile{
			UserID:    user.ID,
			FirstName: first,
			LastName:  last,
			Gender:    genders[r.Intn(len(genders))],
			Country:   gofakeit.Country(),
			City:      gofakeit.City(),
			Bio:       gofakeit.Sentence(10),
		}
		// Roughly two thirds of seeded users have a completed profile.
		if r.Intn(3) > 0 {
			phone := fmt.Sprintf("+1%d", 2000000000+r.Int63n(7999999999))
			profile.PhoneNumber = &phone
			birthday := gofakeit.DateRange(
				time.Date(1960, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2005, 1, 1, 0, 0, 0, 0, time.UTC))
			profile.Birthday = &birthday
			if err := db.Create(profile).Error; err != nil {
				return nil, err
			}
			user.HasProfile = true
			if err := db.Model(user).Update("has_profile", true).Error; err != nil {
				return nil, err
			}
		} else {
			if err := db.Create(profile).Error; err != nil {
				return nil, err
			}
		}

		users = append(users, user)
	}
	return users, nil
}

func createTags(db *gorm.DB) ([]*models.Tag, error) {
	tags := make([]*models.Tag, 0, len(tagPool))
	for _, name := range tagPool {
		tag := &models.Tag{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(tag).Error; err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func createPosts(db *gorm.DB, users []*models.User, tags []*models.Tag, count int) ([]*models.Post, error) {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	authors := make([]*models.User, 0, len(users))
	for _, u := range users {
		if u.HasProfile {
			authors = append(authors, u)
		}
	}
	if len(authors) == 0 {
		return nil, fmt.Errorf("no users with completed profiles to author posts")
	}

	posts := make([]*models.Post, 0, count)
	for i := 0; i < count; i++ {
		author := authors[r.Intn(len(authors))]
		title := gofakeit.Sentence(5)
		if len(title) > 100 {
			title = title[:100]
		}

		post := &models.Post{
			UserID:  author.ID,
			Title:   title,
			Content: gofakeit.Paragraph(2, 4, 8, "\n\n"),
			Slug:    fmt.Sprintf("%s-%d", slug.Make(title), i),
			Image:   fmt.Sprintf("posts/%s.jpg", gofakeit.UUID()),
			// realistic created_at spread over the past 90 days
			CreatedAt: time.Now().Add(-time.Duration(r.Intn(90*24)) * time.Hour),
		}

		picked := map[uint]bool{}
		for j := 0; j < 1+r.Intn(3); j++ {
			tag := tags[r.Intn(len(tags))]
			if !picked[tag.ID] {
				post.Tags = append(post.Tags, *tag)
				picked[tag.ID] = true
			}
		}

		if err := db.Create(post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []*models.User, posts []*models.Post) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	total := 0
	for _, post := range posts {
		for i := 0; i < r.Intn(5); i++ {
			comment := &models.Comment{
				PostID:    post.ID,
				UserID:    users[r.Intn(len(users))].ID,
				Text:      gofakeit.Sentence(8 + r.Intn(12)),
				CreatedAt: post.CreatedAt.Add(time.Duration(1+r.Intn(72)) * time.Hour),
			}
			if err := db.Create(comment).Error; err != nil {
				return err
			}
			total++
		}
	}
	log.Printf("%d comments created", total)
	return nil
}
