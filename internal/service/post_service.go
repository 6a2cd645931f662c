package service

import (
	"context"
	"strings"

	"devbook/internal/models"
	"devbook/internal/repository"
)

// PostService handles post business logic.
type PostService struct {
	postRepo repository.PostRepository
	userRepo repository.UserRepository
}

// NewPostService creates a new PostService.
func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
	}
}

// Create publishes a new post. The author's name and avatar are snapshotted
// from the user row at creation time.
func (s *PostService) Create(ctx context.Context, userID uint, text string) (*models.Post, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("text is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:       userID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         text,
		Likes:        []models.Like{},
		Comments:     []models.Comment{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	return s.postRepo.List(ctx)
}

// GetByID returns a single post with its likes and comments.
func (s *PostService) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// Delete removes a post. Only the author may delete it.
func (s *PostService) Delete(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like records the caller's like on a post and returns the updated like
// list. Liking twice fails.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.Likes(ctx, postID)
}

// Unlike removes the caller's like from a post and returns the updated like
// list. Unliking a post the caller never liked fails.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
		return nil, err
	}
	return s.postRepo.Likes(ctx, postID)
}

// AddComment adds a comment to a post and returns the updated comment list.
// The commenter's name and avatar are snapshotted like the post author's.
func (s *PostService) AddComment(ctx context.Context, userID, postID uint, text string) ([]models.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, models.NewValidationError("text is required")
	}

	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID:       postID,
		UserID:       userID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         text,
	}
	if err := s.postRepo.AddComment(ctx, comment); err != nil {
		return nil, err
	}
	return s.postRepo.Comments(ctx, postID)
}

// RemoveComment deletes a comment from a post and returns the remaining
// comments. Only the comment's author may remove it.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	comment, err := s.postRepo.GetComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment.PostID != postID {
		return nil, models.NewNotFoundError("Comment", commentID)
	}
	if comment.UserID != userID {
		return nil, models.NewForbiddenError("You can only delete your own comments")
	}
	if err := s.postRepo.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return s.postRepo.Comments(ctx, postID)
}
