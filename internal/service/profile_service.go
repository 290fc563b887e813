package service

import (
	"context"
	"strings"

	"inkwell/internal/identity"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"
)

// ProfileService manages user profiles layered over the external identity.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

type UpdateProfileInput struct {
	ExternalID string
	Username   *string
	Bio        *string
	AvatarURL  *string
}

// NewProfileService returns a new ProfileService.
func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// Me returns the caller's profile, creating it on first login. The default
// username is the identity display name, falling back to the email local part.
func (s *ProfileService) Me(ctx context.Context, user *identity.User) (*models.UserProfile, error) {
	username := user.Name
	if username == "" {
		if at := strings.Index(user.Email, "@"); at > 0 {
			username = user.Email[:at]
		} else {
			username = user.Email
		}
	}
	return s.profileRepo.EnsureProfile(ctx, user.ID, username, user.AvatarURL)
}

// UpdateProfile applies a partial update to the caller's profile.
func (s *ProfileService) UpdateProfile(ctx context.Context, in UpdateProfileInput) error {
	fields := map[string]any{}
	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["username"] = strings.TrimSpace(*in.Username)
	}
	if in.Bio != nil {
		if err := validation.ValidateBio(*in.Bio); err != nil {
			return models.NewValidationError(err.Error())
		}
		fields["bio"] = *in.Bio
	}
	if in.AvatarURL != nil {
		if err := validation.ValidateURL(*in.AvatarURL); err != nil {
			return models.NewValidationError("avatar: " + err.Error())
		}
		fields["avatar_url"] = *in.AvatarURL
	}
	return s.profileRepo.UpdateFields(ctx, in.ExternalID, fields)
}

// IsAdmin reports whether the external user has an admin profile.
// Used by the admin route guard.
func (s *ProfileService) IsAdmin(ctx context.Context, externalID string) (bool, error) {
	profile, err := s.profileRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return false, err
	}
	return profile.IsAdmin, nil
}
