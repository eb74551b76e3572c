package models

// Tag is a free-form label attached to posts. Names are unique and matched
// case-insensitively when filtering; tags are created on demand.
type Tag struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Posts []Post `gorm:"many2many:post_tags" json:"-"`
}
