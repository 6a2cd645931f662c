// Package service contains the application's business logic.
package service

import (
	"context"
	"errors"

	"devbook/internal/cache"
	"devbook/internal/models"
	"devbook/internal/repository"
	"devbook/internal/validation"

	"gorm.io/gorm"
)

// ProfileInput carries the fields accepted when creating or updating a
// profile. Status and Skills are required; the rest merge over existing
// values when non-empty.
type ProfileInput struct {
	Company        string             `json:"company"`
	Website        string             `json:"website"`
	Location       string             `json:"location"`
	Status         string             `json:"status"`
	Skills         models.SkillList   `json:"skills"`
	Bio            string             `json:"bio"`
	GithubUsername string             `json:"githubusername"`
	Social         models.SocialLinks `json:"social"`
}

// ExperienceInput carries the fields for a new work-history entry.
type ExperienceInput struct {
	Title       string           `json:"title"`
	Company     string           `json:"company"`
	Location    string           `json:"location"`
	From        models.FlexTime  `json:"from"`
	To          *models.FlexTime `json:"to"`
	Current     bool             `json:"current"`
	Description string           `json:"description"`
}

// EducationInput carries the fields for a new education entry.
type EducationInput struct {
	School       string           `json:"school"`
	Degree       string           `json:"degree"`
	FieldOfStudy string           `json:"fieldofstudy"`
	From         models.FlexTime  `json:"from"`
	To           *models.FlexTime `json:"to"`
	Current      bool             `json:"current"`
	Description  string           `json:"description"`
}

// ProfileService handles profile business logic.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
	db          *gorm.DB
}

// NewProfileService creates a new ProfileService. The db handle backs the
// multi-table account deletion transaction.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository, db *gorm.DB) *ProfileService {
	return &ProfileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		db:          db,
	}
}

// GetByUserID returns the profile owned by the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.profileRepo.GetByUserID(ctx, userID)
}

// List returns all profiles, newest first.
func (s *ProfileService) List(ctx context.Context) ([]*models.Profile, error) {
	return s.profileRepo.List(ctx)
}

// Upsert creates the caller's profile or merges the input into the existing
// one. Status and skills are always written; other fields only overwrite
// when non-empty.
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in ProfileInput) (*models.Profile, error) {
	if in.Status == "" {
		return nil, models.NewValidationError("status is required")
	}
	if len(in.Skills) == 0 {
		return nil, models.NewValidationError("skills are required")
	}

	website, err := validation.NormalizeWebsite(in.Website)
	if err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	in.Website = website

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		var appErr *models.AppError
		if !errors.As(err, &appErr) || appErr.Code != models.CodeNotFound {
			return nil, err
		}
		existing = nil
	}

	if existing == nil {
		profile := &models.Profile{
			UserID:         userID,
			Company:        in.Company,
			Website:        in.Website,
			Location:       in.Location,
			Status:         in.Status,
			Skills:         in.Skills,
			Bio:            in.Bio,
			GithubUsername: in.GithubUsername,
			Social:         in.Social,
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return s.profileRepo.GetByUserID(ctx, userID)
	}

	updates := map[string]any{
		"status": in.Status,
		"skills": in.Skills,
	}
	if in.Company != "" {
		updates["company"] = in.Company
	}
	if in.Website != "" {
		updates["website"] = in.Website
	}
	if in.Location != "" {
		updates["location"] = in.Location
	}
	if in.Bio != "" {
		updates["bio"] = in.Bio
	}
	if in.GithubUsername != "" {
		updates["github_username"] = in.GithubUsername
	}

	social := existing.Social
	social.Merge(in.Social)
	updates["social"] = social

	if err := s.profileRepo.UpdateFields(ctx, existing, updates); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddExperience prepends a work-history entry to the caller's profile and
// returns the updated profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in ExperienceInput) (*models.Profile, error) {
	if in.Title == "" {
		return nil, models.NewValidationError("title is required")
	}
	if in.Company == "" {
		return nil, models.NewValidationError("company is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("from date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := &models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From.Time(),
		To:          in.To.TimePtr(),
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, entry); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveExperience deletes one work-history entry from the caller's profile.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteExperience(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// AddEducation prepends an education entry to the caller's profile and
// returns the updated profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in EducationInput) (*models.Profile, error) {
	if in.School == "" {
		return nil, models.NewValidationError("school is required")
	}
	if in.Degree == "" {
		return nil, models.NewValidationError("degree is required")
	}
	if in.FieldOfStudy == "" {
		return nil, models.NewValidationError("field of study is required")
	}
	if in.From.IsZero() {
		return nil, models.NewValidationError("from date is required")
	}

	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	entry := &models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From.Time(),
		To:           in.To.TimePtr(),
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, entry); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// RemoveEducation deletes one education entry from the caller's profile.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, entryID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.DeleteEducation(ctx, profile.ID, entryID); err != nil {
		return nil, err
	}
	return s.profileRepo.GetByUserID(ctx, userID)
}

// DeleteAccount removes the user and everything they own in one transaction:
// their profile with its entries, their posts with all likes and comments on
// them, and any likes or comments they left on other users' posts.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err == nil {
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Experience{}).Error; err != nil {
				return err
			}
			if err := tx.Where("profile_id = ?", profile.ID).Delete(&models.Education{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		}

		var postIDs []uint
		if err := tx.Model(&models.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if len(postIDs) > 0 {
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Like{}).Error; err != nil {
				return err
			}
			if err := tx.Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", postIDs).Delete(&models.Post{}).Error; err != nil {
				return err
			}
		}

		// Likes and comments the user left on posts that survive.
		if err := tx.Where("user_id = ?", userID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		return models.NewInternalError(err)
	}

	cache.InvalidateProfile(ctx, userID)
	return nil
}
