package service

import (
	"context"
	"testing"
	"time"

	"devbook/internal/database"
	"devbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	listFn             func(context.Context) ([]*models.Profile, error)
	createFn           func(context.Context, *models.Profile) error
	updateFieldsFn     func(context.Context, *models.Profile, map[string]any) error
	addExperienceFn    func(context.Context, *models.Experience) error
	deleteExperienceFn func(context.Context, uint, uint) error
	addEducationFn     func(context.Context, *models.Education) error
	deleteEducationFn  func(context.Context, uint, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context) ([]*models.Profile, error) {
	return s.listFn(ctx)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) UpdateFields(ctx context.Context, profile *models.Profile, updates map[string]any) error {
	return s.updateFieldsFn(ctx, profile, updates)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, entry *models.Experience) error {
	return s.addExperienceFn(ctx, entry)
}
func (s *profileRepoStub) DeleteExperience(ctx context.Context, profileID, entryID uint) error {
	return s.deleteExperienceFn(ctx, profileID, entryID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, entry *models.Education) error {
	return s.addEducationFn(ctx, entry)
}
func (s *profileRepoStub) DeleteEducation(ctx context.Context, profileID, entryID uint) error {
	return s.deleteEducationFn(ctx, profileID, entryID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn: func(_ context.Context, userID uint) (*models.Profile, error) {
			return &models.Profile{ID: 1, UserID: userID, Status: "Developer", Skills: models.SkillList{"Go"}}, nil
		},
		listFn:             func(_ context.Context) ([]*models.Profile, error) { return nil, nil },
		createFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		updateFieldsFn:     func(_ context.Context, _ *models.Profile, _ map[string]any) error { return nil },
		addExperienceFn:    func(_ context.Context, _ *models.Experience) error { return nil },
		deleteExperienceFn: func(_ context.Context, _, _ uint) error { return nil },
		addEducationFn:     func(_ context.Context, _ *models.Education) error { return nil },
		deleteEducationFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

func TestProfileServiceUpsertValidation(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopUserRepo(), nil)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, 1, ProfileInput{Skills: models.SkillList{"Go"}})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.Upsert(ctx, 1, ProfileInput{Status: "Developer"})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.Upsert(ctx, 1, ProfileInput{
		Status: "Developer", Skills: models.SkillList{"Go"}, Website: "ht tp://nope",
	})
	assertAppErrorCode(t, err, models.CodeValidation)
}

func TestProfileServiceUpsertCreatesWhenMissing(t *testing.T) {
	profiles := noopProfileRepo()
	created := false
	profiles.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		if !created {
			return nil, models.NewNotFoundError("Profile", userID)
		}
		return &models.Profile{UserID: userID, Status: "Developer"}, nil
	}
	profiles.createFn = func(_ context.Context, p *models.Profile) error {
		created = true
		assert.Equal(t, "https://example.com", p.Website, "website gains a scheme")
		return nil
	}

	svc := NewProfileService(profiles, noopUserRepo(), nil)
	profile, err := svc.Upsert(context.Background(), 5, ProfileInput{
		Status:  "Developer",
		Skills:  models.SkillList{"Go"},
		Website: "example.com",
	})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.True(t, created)
}

func TestProfileServiceUpsertMergesExisting(t *testing.T) {
	profiles := noopProfileRepo()
	existing := &models.Profile{
		ID:      3,
		UserID:  5,
		Status:  "Junior Developer",
		Skills:  models.SkillList{"HTML"},
		Company: "Acme",
		Social:  models.SocialLinks{Twitter: "https://twitter.com/old", Youtube: "https://youtube.com/old"},
	}
	profiles.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return existing, nil
	}
	var gotUpdates map[string]any
	profiles.updateFieldsFn = func(_ context.Context, _ *models.Profile, updates map[string]any) error {
		gotUpdates = updates
		return nil
	}

	svc := NewProfileService(profiles, noopUserRepo(), nil)
	_, err := svc.Upsert(context.Background(), 5, ProfileInput{
		Status: "Senior Developer",
		Skills: models.SkillList{"Go", "Redis"},
		Bio:    "building things",
		Social: models.SocialLinks{Twitter: "https://twitter.com/new"},
	})
	require.NoError(t, err)
	require.NotNil(t, gotUpdates)

	assert.Equal(t, "Senior Developer", gotUpdates["status"])
	assert.Equal(t, models.SkillList{"Go", "Redis"}, gotUpdates["skills"])
	assert.Equal(t, "building things", gotUpdates["bio"])
	// empty fields never clear existing values
	assert.NotContains(t, gotUpdates, "company")

	social := gotUpdates["social"].(models.SocialLinks)
	assert.Equal(t, "https://twitter.com/new", social.Twitter)
	assert.Equal(t, "https://youtube.com/old", social.Youtube)
}

func TestProfileServiceAddExperienceValidation(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopUserRepo(), nil)
	ctx := context.Background()
	from := models.FlexTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddExperience(ctx, 1, ExperienceInput{Company: "Acme", From: from})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.AddExperience(ctx, 1, ExperienceInput{Title: "Engineer", From: from})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.AddExperience(ctx, 1, ExperienceInput{Title: "Engineer", Company: "Acme"})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.AddExperience(ctx, 1, ExperienceInput{Title: "Engineer", Company: "Acme", From: from})
	require.NoError(t, err)
}

func TestProfileServiceAddExperienceMissingProfile(t *testing.T) {
	profiles := noopProfileRepo()
	profiles.getByUserIDFn = func(_ context.Context, userID uint) (*models.Profile, error) {
		return nil, models.NewNotFoundError("Profile", userID)
	}
	svc := NewProfileService(profiles, noopUserRepo(), nil)

	_, err := svc.AddExperience(context.Background(), 1, ExperienceInput{
		Title: "Engineer", Company: "Acme",
		From: models.FlexTime(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)),
	})
	assertAppErrorCode(t, err, models.CodeNotFound)
}

func TestProfileServiceAddEducationValidation(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopUserRepo(), nil)
	from := models.FlexTime(time.Date(2016, 9, 1, 0, 0, 0, 0, time.UTC))

	_, err := svc.AddEducation(context.Background(), 1, EducationInput{
		Degree: "BSc", FieldOfStudy: "CS", From: from,
	})
	assertAppErrorCode(t, err, models.CodeValidation)

	_, err = svc.AddEducation(context.Background(), 1, EducationInput{
		School: "MIT", Degree: "BSc", FieldOfStudy: "CS", From: from,
	})
	require.NoError(t, err)
}

func TestProfileServiceDeleteAccountCascades(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	victim := &models.User{Name: "Victim", Email: "victim@example.com", Password: "x"}
	other := &models.User{Name: "Other", Email: "other@example.com", Password: "x"}
	require.NoError(t, db.Create(victim).Error)
	require.NoError(t, db.Create(other).Error)

	profile := &models.Profile{
		UserID: victim.ID, Status: "Developer", Skills: models.SkillList{"Go"},
		Experience: []models.Experience{{Title: "Engineer", Company: "Acme", From: time.Now()}},
	}
	require.NoError(t, db.Create(profile).Error)

	victimPost := &models.Post{UserID: victim.ID, AuthorName: victim.Name, Text: "mine"}
	otherPost := &models.Post{UserID: other.ID, AuthorName: other.Name, Text: "theirs"}
	require.NoError(t, db.Create(victimPost).Error)
	require.NoError(t, db.Create(otherPost).Error)

	// other user engages with the victim's post, victim engages elsewhere
	require.NoError(t, db.Create(&models.Like{UserID: other.ID, PostID: victimPost.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: victim.ID, PostID: otherPost.ID}).Error)
	require.NoError(t, db.Create(&models.Comment{
		PostID: otherPost.ID, UserID: victim.ID, AuthorName: victim.Name, Text: "hello",
	}).Error)

	svc := NewProfileService(noopProfileRepo(), noopUserRepo(), db)
	require.NoError(t, svc.DeleteAccount(context.Background(), victim.ID))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count).Error)
	assert.Zero(t, count, "user row gone")
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	assert.Zero(t, count, "profile gone")
	require.NoError(t, db.Model(&models.Experience{}).Count(&count).Error)
	assert.Zero(t, count, "experience entries gone")
	require.NoError(t, db.Model(&models.Post{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	assert.Zero(t, count, "posts gone")
	require.NoError(t, db.Model(&models.Like{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	assert.Zero(t, count, "likes on other posts gone")
	require.NoError(t, db.Model(&models.Comment{}).Where("user_id = ?", victim.ID).Count(&count).Error)
	assert.Zero(t, count, "comments on other posts gone")

	// the other user's post survives untouched
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", otherPost.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}
