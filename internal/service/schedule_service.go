// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"

	"postpilot/internal/models"
	"postpilot/internal/observability"
	"postpilot/internal/repository"
)

// AssetReconciler deletes image files that no persisted record references
// anymore. Failures are absorbed by the implementation.
type AssetReconciler interface {
	Delete(path string)
}

// CreatePostInput is the payload for scheduling a new post.
type CreatePostInput struct {
	Platform  string
	PostText  string
	PostDate  string
	PostTime  string
	ImagePath string
	ImageURL  string
}

// ScheduleService manages a user's posting schedule and the image files its
// posts reference. Mutations persist the whole schedule first; only after the
// write succeeds are superseded images reconciled.
type ScheduleService struct {
	repo   repository.ScheduleRepository
	assets AssetReconciler
}

// NewScheduleService returns a ScheduleService backed by the given repository.
func NewScheduleService(repo repository.ScheduleRepository, assets AssetReconciler) *ScheduleService {
	return &ScheduleService{repo: repo, assets: assets}
}

// GetSchedule returns the user's schedule with all embedded posts.
func (s *ScheduleService) GetSchedule(ctx context.Context, userID uint) (*models.Schedule, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// GetPost returns a single post from the user's schedule.
func (s *ScheduleService) GetPost(ctx context.Context, userID uint, postID string) (models.Post, error) {
	schedule, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return models.Post{}, err
	}
	return schedule.Posts.FindByID(postID)
}

// CreatePost validates and appends a new post to the user's schedule.
func (s *ScheduleService) CreatePost(ctx context.Context, userID uint, input CreatePostInput) (models.Post, error) {
	if input.Platform == "" || input.PostDate == "" || input.PostTime == "" {
		return models.Post{}, models.NewValidationError("Platform, post date and post time are required")
	}
	if !models.SupportedPlatform(input.Platform) {
		return models.Post{}, models.NewValidationError("Unsupported platform: " + input.Platform)
	}
	if input.ImagePath == "" {
		return models.Post{}, models.NewValidationError("An image is required")
	}

	schedule, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return models.Post{}, err
	}

	created := schedule.Posts.Insert(models.Post{
		Platform:  input.Platform,
		PostText:  input.PostText,
		PostDate:  input.PostDate,
		PostTime:  input.PostTime,
		ImagePath: input.ImagePath,
		ImageURL:  input.ImageURL,
	})

	if err := s.repo.Save(ctx, schedule); err != nil {
		return models.Post{}, err
	}

	observability.ScheduleMutations.WithLabelValues("create").Inc()
	return created, nil
}

// UpdatePost merges the non-empty fields of upd over an existing post and
// returns the full updated posts collection, since callers render the whole
// schedule after an edit. When the update replaces the post's image, the old
// file is deleted only after the new state is persisted, so a failed save
// never strands the post pointing at a deleted file.
func (s *ScheduleService) UpdatePost(ctx context.Context, userID uint, postID string, upd models.PostUpdate) (models.PostList, error) {
	if upd.Platform != "" && !models.SupportedPlatform(upd.Platform) {
		return nil, models.NewValidationError("Unsupported platform: " + upd.Platform)
	}

	schedule, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	superseded, err := schedule.Posts.Apply(postID, upd)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, schedule); err != nil {
		return nil, err
	}

	if superseded != "" {
		s.assets.Delete(superseded)
	}

	observability.ScheduleMutations.WithLabelValues("update").Inc()
	return schedule.Posts, nil
}

// DeletePost removes a post from the schedule and reconciles its image file
// after the removal is persisted.
func (s *ScheduleService) DeletePost(ctx context.Context, userID uint, postID string) error {
	schedule, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return err
	}

	imagePath, err := schedule.Posts.Remove(postID)
	if err != nil {
		return err
	}

	if err := s.repo.Save(ctx, schedule); err != nil {
		return err
	}

	if imagePath != "" {
		s.assets.Delete(imagePath)
	}

	observability.ScheduleMutations.WithLabelValues("delete").Inc()
	return nil
}
