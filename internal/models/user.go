// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account in the Inkwell application. Passwords are
// stored as bcrypt hashes and never serialized.
type User struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Username   string    `gorm:"unique;not null" json:"username"`
	Email      string    `gorm:"unique;not null" json:"email"`
	Password   string    `gorm:"not null" json:"-"`
	HasProfile bool      `gorm:"not null;default:false" json:"has_profile"`
	CreatedAt  time.Time `json:"date_joined"`
	UpdatedAt  time.Time `json:"-"`
	Profile    *Profile  `gorm:"foreignKey:UserID" json:"-"`
	Posts      []Post    `gorm:"foreignKey:UserID" json:"-"`
}
