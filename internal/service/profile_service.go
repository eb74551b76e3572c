package service

import (
	"context"
	"errors"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProfileService holds the business logic for user profiles.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	postRepo    repository.PostRepository
}

// ProfilePatch carries the optional profile fields of a partial update.
// Nil pointers are left unchanged.
type ProfilePatch struct {
	FirstName      *string `json:"first_name" validate:"omitempty,max=100"`
	LastName       *string `json:"last_name" validate:"omitempty,max=100"`
	Gender         *string `json:"gender" validate:"omitempty,oneof=M F O"`
	Country        *string `json:"country" validate:"omitempty,max=150"`
	StreetAddress  *string `json:"street_address" validate:"omitempty,max=100"`
	City           *string `json:"city" validate:"omitempty,max=100"`
	PhoneNumber    *string `json:"phone_number"`
	Birthday       *string `json:"birthday" validate:"omitempty,datetime=2006-01-02"`
	Bio            *string `json:"bio" validate:"omitempty,max=500"`
	ProfilePicture *string `json:"profile_picture"`
	FacebookURL    *string `json:"facebook_url" validate:"omitempty,url,max=255"`
	InstagramURL   *string `json:"instagram_url" validate:"omitempty,url,max=255"`
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, postRepo repository.PostRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo, postRepo: postRepo}
}

// GetOwnProfile returns the caller's profile with the user fields hydrated.
func (s *ProfileService) GetOwnProfile(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// patchFieldNames maps validator struct field names to their JSON names so
// field errors line up with the request payload.
var patchFieldNames = map[string]string{
	"FirstName":      "first_name",
	"LastName":       "last_name",
	"Gender":         "gender",
	"Country":        "country",
	"StreetAddress":  "street_address",
	"City":           "city",
	"PhoneNumber":    "phone_number",
	"Birthday":       "birthday",
	"Bio":            "bio",
	"ProfilePicture": "profile_picture",
	"FacebookURL":    "facebook_url",
	"InstagramURL":   "instagram_url",
}

// UpdateOwnProfile applies a partial update to the caller's profile and
// marks the account as having a completed profile.
func (s *ProfileService) UpdateOwnProfile(ctx context.Context, userID uint, patch ProfilePatch) (*models.Profile, error) {
	if err := validate.Struct(patch); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				name := patchFieldNames[fe.Field()]
				if name == "" {
					name = fe.Field()
				}
				fields[name] = validationMessage(fe)
			}
		}
		if len(fields) == 0 {
			return nil, models.NewValidationError("Invalid profile data")
		}
		return nil, models.NewFieldValidationError("Profile validation failed", fields)
	}
	if patch.PhoneNumber != nil && *patch.PhoneNumber != "" {
		if err := validation.ValidatePhoneNumber(*patch.PhoneNumber); err != nil {
			return nil, models.NewFieldValidationError("Profile validation failed", map[string]string{"phone_number": err.Error()})
		}
	}
	if patch.ProfilePicture != nil && *patch.ProfilePicture != "" {
		if err := validation.ValidateImagePath(*patch.ProfilePicture); err != nil {
			return nil, models.NewFieldValidationError("Profile validation failed", map[string]string{"profile_picture": err.Error()})
		}
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.FirstName != nil {
		profile.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		profile.LastName = *patch.LastName
	}
	if patch.Gender != nil {
		profile.Gender = models.Gender(*patch.Gender)
	}
	if patch.Country != nil {
		profile.Country = *patch.Country
	}
	if patch.StreetAddress != nil {
		profile.StreetAddress = *patch.StreetAddress
	}
	if patch.City != nil {
		profile.City = *patch.City
	}
	if patch.PhoneNumber != nil {
		if *patch.PhoneNumber == "" {
			profile.PhoneNumber = nil
		} else {
			profile.PhoneNumber = patch.PhoneNumber
		}
	}
	if patch.Birthday != nil {
		if *patch.Birthday == "" {
			profile.Birthday = nil
		} else {
			day, err := time.Parse("2006-01-02", *patch.Birthday)
			if err != nil {
				return nil, models.NewFieldValidationError("Profile validation failed", map[string]string{"birthday": "Birthday must be in YYYY-MM-DD format"})
			}
			profile.Birthday = &day
		}
	}
	if patch.Bio != nil {
		profile.Bio = *patch.Bio
	}
	if patch.ProfilePicture != nil {
		profile.ProfilePicture = *patch.ProfilePicture
	}
	if patch.FacebookURL != nil {
		profile.FacebookURL = *patch.FacebookURL
	}
	if patch.InstagramURL != nil {
		profile.InstagramURL = *patch.InstagramURL
	}

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.HasProfile {
		user.HasProfile = true
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	return s.profileRepo.GetByUserID(ctx, userID)
}

// HasCompletedProfile reports whether the user finished their profile.
func (s *ProfileService) HasCompletedProfile(ctx context.Context, userID uint) (bool, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user.HasProfile, nil
}

// Dashboard returns the caller's profile together with their posts.
func (s *ProfileService) Dashboard(ctx context.Context, userID uint) (*models.Profile, []*models.Post, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return profile, posts, nil
}

// PublicProfile returns another user's profile and posts by username.
func (s *ProfileService) PublicProfile(ctx context.Context, username string) (*models.Profile, []*models.Post, error) {
	profile, err := s.profileRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	posts, err := s.postRepo.ListByUserID(ctx, profile.UserID)
	if err != nil {
		return nil, nil, err
	}
	return profile, posts, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "max":
		return "Value too long (max " + fe.Param() + " characters)"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "url":
		return "Must be a valid URL"
	case "datetime":
		return "Must be a date in YYYY-MM-DD format"
	default:
		return "Invalid value"
	}
}
