package models

import (
	"time"
)

// Gender is the single-letter gender code stored on a profile.
type Gender string

// Gender codes accepted by the profile endpoints.
const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Profile holds the one-to-one profile record for a user. It is created
// empty during registration and filled in later through the profile
// endpoints; User.HasProfile flips to true on the first update.
type Profile struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         uint       `gorm:"uniqueIndex;not null" json:"-"`
	User           User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	FirstName      string     `gorm:"size:100" json:"first_name"`
	LastName       string     `gorm:"size:100" json:"last_name"`
	Gender         Gender     `gorm:"size:1" json:"gender"`
	Country        string     `gorm:"size:150" json:"country"`
	StreetAddress  string     `gorm:"size:100" json:"street_address"`
	City           string     `gorm:"size:100" json:"city"`
	PhoneNumber    *string    `gorm:"size:17;uniqueIndex" json:"phone_number"`
	Birthday       *time.Time `json:"birthday"`
	Bio            string     `gorm:"size:500" json:"bio"`
	ProfilePicture string     `json:"profile_picture"`
	FacebookURL    string     `gorm:"size:255" json:"facebook_url"`
	InstagramURL   string     `gorm:"size:255" json:"instagram_url"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`

	// Email and DateJoined mirror the owning user; populated at query time.
	Email      string    `gorm:"-" json:"email"`
	DateJoined time.Time `gorm:"-" json:"date_joined"`
}

// HydrateUserFields copies the read-only user attributes that the profile
// representation exposes.
func (p *Profile) HydrateUserFields(u *User) {
	if u == nil {
		return
	}
	p.Email = u.Email
	p.DateJoined = u.CreatedAt
}
