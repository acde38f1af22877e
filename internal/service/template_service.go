package service

import (
	"context"

	"postpilot/internal/models"
	"postpilot/internal/repository"
)

// CreateTemplateInput is the payload for creating a post template.
type CreateTemplateInput struct {
	Name      string
	ImagePath string
	ImageURL  string
}

// UpdateTemplateInput is the payload for a partial template update. Empty
// fields leave the current value alone.
type UpdateTemplateInput struct {
	Name      string
	ImagePath string
	ImageURL  string
}

// TemplateService manages reusable post templates and their image files.
type TemplateService struct {
	repo   repository.TemplateRepository
	assets AssetReconciler
}

// NewTemplateService returns a TemplateService.
func NewTemplateService(repo repository.TemplateRepository, assets AssetReconciler) *TemplateService {
	return &TemplateService{repo: repo, assets: assets}
}

// ListTemplates returns all templates, newest first.
func (s *TemplateService) ListTemplates(ctx context.Context) ([]models.Template, error) {
	return s.repo.List(ctx)
}

// GetTemplate returns a single template by id.
func (s *TemplateService) GetTemplate(ctx context.Context, id uint) (*models.Template, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateTemplate validates and stores a new template.
func (s *TemplateService) CreateTemplate(ctx context.Context, input CreateTemplateInput) (*models.Template, error) {
	if input.Name == "" {
		return nil, models.NewValidationError("Template name is required")
	}
	if input.ImagePath == "" {
		return nil, models.NewValidationError("An image is required")
	}

	template := &models.Template{
		Name:      input.Name,
		ImagePath: input.ImagePath,
		ImageURL:  input.ImageURL,
	}
	if err := s.repo.Create(ctx, template); err != nil {
		return nil, err
	}
	return template, nil
}

// UpdateTemplate merges the non-empty fields of input over the template. A
// replaced image file is deleted only after the update is persisted.
func (s *TemplateService) UpdateTemplate(ctx context.Context, id uint, input UpdateTemplateInput) (*models.Template, error) {
	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var superseded string
	if input.Name != "" {
		template.Name = input.Name
	}
	if input.ImagePath != "" && input.ImagePath != template.ImagePath {
		superseded = template.ImagePath
		template.ImagePath = input.ImagePath
		template.ImageURL = input.ImageURL
	}

	if err := s.repo.Save(ctx, template); err != nil {
		return nil, err
	}

	if superseded != "" {
		s.assets.Delete(superseded)
	}
	return template, nil
}

// DeleteTemplate removes the template and reconciles its image file after the
// delete is persisted.
func (s *TemplateService) DeleteTemplate(ctx context.Context, id uint) error {
	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if template.ImagePath != "" {
		s.assets.Delete(template.ImagePath)
	}
	return nil
}
