package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines the interface for user profile data operations
type ProfileRepository interface {
	GetByExternalID(ctx context.Context, externalID string) (*models.UserProfile, error)
	GetByUsername(ctx context.Context, username string) (*models.UserProfile, error)
	EnsureProfile(ctx context.Context, externalID, username, avatarURL string) (*models.UserProfile, error)
	UpdateFields(ctx context.Context, externalID string, fields map[string]any) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByExternalID(ctx context.Context, externalID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// EnsureProfile returns the caller's profile, creating it on first sight.
// The count check and the insert share one transaction so only a single
// profile can ever become the bootstrap admin.
func (r *profileRepository) EnsureProfile(ctx context.Context, externalID, username, avatarURL string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("external_id = ?", externalID).First(&profile).Error
		if err == nil {
			return nil
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		var total int64
		if err := tx.Model(&models.UserProfile{}).Count(&total).Error; err != nil {
			return err
		}

		profile = models.UserProfile{
			ExternalID: externalID,
			Username:   username,
			AvatarURL:  avatarURL,
			IsAdmin:    total == 0,
		}
		return tx.Create(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateFields(ctx context.Context, externalID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("external_id = ?", externalID).
		Updates(fields).Error
}
