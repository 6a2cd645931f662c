// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"devbook/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options controls how much demo data Run creates.
type Options struct {
	Users           int
	PostsPerUser    int
	CommentsPerPost int
	Password        string
}

// DefaultOptions returns a small but connected data set.
func DefaultOptions() Options {
	return Options{
		Users:           10,
		PostsPerUser:    3,
		CommentsPerPost: 2,
		Password:        "password123",
	}
}

var statuses = []string{
	"Developer", "Senior Developer", "Junior Developer",
	"Student or Learning", "Instructor", "Intern",
}

var skillPool = []string{
	"Go", "JavaScript", "TypeScript", "Python", "PostgreSQL",
	"Redis", "Docker", "Kubernetes", "React", "HTML", "CSS",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db      *gorm.DB
	rand    *rand.Rand
	nextSeq int
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{
		db:   db,
		rand: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CreateUser persists a fake user with the given password. Emails carry a
// sequence number so repeated runs never trip the unique index.
func (f *Factory) CreateUser(password string) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	f.nextSeq++
	email := fmt.Sprintf("%s.%d@%s",
		strings.ToLower(gofakeit.Username()), f.nextSeq, gofakeit.DomainName())
	user := &models.User{
		Name:     gofakeit.Name(),
		Email:    email,
		Password: string(hashed),
		Avatar:   models.GravatarURL(email),
	}
	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a fake profile for the user, with one experience
// and one education entry.
func (f *Factory) CreateProfile(user *models.User) (*models.Profile, error) {
	skills := make(models.SkillList, 0, 4)
	for _, i := range f.rand.Perm(len(skillPool))[:4] {
		skills = append(skills, skillPool[i])
	}

	from := time.Now().AddDate(-f.rand.Intn(5)-1, 0, 0)
	profile := &models.Profile{
		UserID:         user.ID,
		Company:        gofakeit.Company(),
		Website:        gofakeit.URL(),
		Location:       fmt.Sprintf("%s, %s", gofakeit.City(), gofakeit.StateAbr()),
		Status:         statuses[f.rand.Intn(len(statuses))],
		Skills:         skills,
		Bio:            gofakeit.Sentence(12),
		GithubUsername: strings.ToLower(gofakeit.Username()),
		Social: models.SocialLinks{
			Twitter:  "https://twitter.com/" + strings.ToLower(gofakeit.Username()),
			Linkedin: "https://linkedin.com/in/" + strings.ToLower(gofakeit.Username()),
		},
		Experience: []models.Experience{{
			Title:       gofakeit.JobTitle(),
			Company:     gofakeit.Company(),
			Location:    gofakeit.City(),
			From:        from,
			Current:     true,
			Description: gofakeit.Sentence(8),
		}},
		Education: []models.Education{{
			School:       gofakeit.Company() + " University",
			Degree:       "BSc",
			FieldOfStudy: "Computer Science",
			From:         from.AddDate(-4, 0, 0),
			To:           &from,
			Description:  gofakeit.Sentence(6),
		}},
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// CreatePost persists a fake post authored by the user, spread over the last
// 90 days so listings look lived-in.
func (f *Factory) CreatePost(user *models.User) (*models.Post, error) {
	post := &models.Post{
		UserID:       user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         gofakeit.Paragraph(1, 3, 8, " "),
		CreatedAt:    time.Now().Add(-time.Duration(f.rand.Intn(90*24)) * time.Hour),
	}
	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a fake comment by the user on the post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) error {
	comment := &models.Comment{
		PostID:       post.ID,
		UserID:       user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         gofakeit.Sentence(10),
	}
	return f.db.Create(comment).Error
}

// Like records a like, ignoring duplicates.
func (f *Factory) Like(user *models.User, post *models.Post) error {
	like := &models.Like{UserID: user.ID, PostID: post.ID}
	err := f.db.Create(like).Error
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "unique") {
		return nil
	}
	return err
}

// Run populates the database with a connected social mesh of users,
// profiles, posts, likes, and comments.
func Run(db *gorm.DB, opts Options) error {
	f := NewFactory(db)

	users := make([]*models.User, 0, opts.Users)
	for i := 0; i < opts.Users; i++ {
		user, err := f.CreateUser(opts.Password)
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		if _, err := f.CreateProfile(user); err != nil {
			return fmt.Errorf("seed profile: %w", err)
		}
		users = append(users, user)
	}

	for _, user := range users {
		for i := 0; i < opts.PostsPerUser; i++ {
			post, err := f.CreatePost(user)
			if err != nil {
				return fmt.Errorf("seed post: %w", err)
			}
			for j := 0; j < opts.CommentsPerPost; j++ {
				commenter := users[f.rand.Intn(len(users))]
				if err := f.CreateComment(commenter, post); err != nil {
					return fmt.Errorf("seed comment: %w", err)
				}
			}
			for _, liker := range users[:f.rand.Intn(len(users))] {
				if err := f.Like(liker, post); err != nil {
					return fmt.Errorf("seed like: %w", err)
				}
			}
		}
	}

	log.Printf("Seeded %d users with profiles and %d posts each", opts.Users, opts.PostsPerUser)
	return nil
}
