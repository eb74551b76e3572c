package models

import (
	"time"
)

// Post represents a blog post. The slug is generated once at creation and
// acts as the immutable public identifier.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Image     string    `json:"post_image"`
	Slug      string    `gorm:"uniqueIndex;size:250;not null" json:"slug"`
	Tags      []Tag     `gorm:"many2many:post_tags" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`

	// Author, AuthorPics and TagNames are derived from the preloaded
	// associations; populated at query time.
	Author     string   `gorm:"-" json:"author"`
	AuthorPics *string  `gorm:"-" json:"author_pics"`
	TagNames   []string `gorm:"-" json:"tags"`
}

// Decorate fills the response-only fields from preloaded associations.
// TagNames is always non-nil so the JSON field renders as [].
func (p *Post) Decorate() {
	p.Author = p.User.Username
	p.AuthorPics = nil
	if p.User.Profile != nil && p.User.Profile.ProfilePicture != "" {
		pic := p.User.Profile.ProfilePicture
		p.AuthorPics = &pic
	}
	p.TagNames = make([]string, 0, len(p.Tags))
	for _, t := range p.Tags {
		p.TagNames = append(p.TagNames, t.Name)
	}
}
