package repository

import (
	"context"
	"errors"

	"devbook/internal/cache"
	"devbook/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// embedded experience/education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	UpdateFields(ctx context.Context, profile *models.Profile, updates map[string]any) error
	AddExperience(ctx context.Context, entry *models.Experience) error
	DeleteExperience(ctx context.Context, profileID, entryID uint) error
	AddEducation(ctx context.Context, entry *models.Education) error
	DeleteEducation(ctx context.Context, profileID, entryID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withEmbedded preloads the owning user and the experience/education rows.
// Children are ordered by id descending so head insertion order holds.
func (r *profileRepository) withEmbedded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	key := cache.ProfileKey(userID)

	err := cache.Aside(ctx, key, &profile, cache.ProfileTTL, func() error {
		if err := r.withEmbedded(r.db.WithContext(ctx)).
			Where("user_id = ?", userID).
			First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Profile", userID)
			}
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile

	err := cache.Aside(ctx, cache.ProfileListKey, &profiles, cache.ProfileListTTL, func() error {
		if err := r.withEmbedded(r.db.WithContext(ctx)).
			Order("created_at DESC").
			Find(&profiles).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// UpdateFields applies a partial update to the named columns only.
func (r *profileRepository) UpdateFields(ctx context.Context, profile *models.Profile, updates map[string]any) error {
	if err := r.db.WithContext(ctx).
		Model(profile).
		Updates(updates).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, entry *models.Experience) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, entry.ProfileID)
	return nil
}

func (r *profileRepository) DeleteExperience(ctx context.Context, profileID, entryID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Experience", entryID)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, entry *models.Education) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return models.NewInternalError(err)
	}
	r.invalidateByProfileID(ctx, entry.ProfileID)
	return nil
}

func (r *profileRepository) DeleteEducation(ctx context.Context, profileID, entryID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", entryID, profileID).
		Delete(&models.Education{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Education", entryID)
	}
	r.invalidateByProfileID(ctx, profileID)
	return nil
}

func (r *profileRepository) invalidateByProfileID(ctx context.Context, profileID uint) {
	var profile models.Profile
	if err := r.db.WithContext(ctx).Select("user_id").First(&profile, profileID).Error; err == nil {
		cache.InvalidateProfile(ctx, profile.UserID)
	}
}
