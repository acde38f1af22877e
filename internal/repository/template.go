package repository

import (
	"context"
	"errors"

	"postpilot/internal/cache"
	"postpilot/internal/models"

	"gorm.io/gorm"
)

// TemplateRepository defines persistence operations for post templates.
type TemplateRepository interface {
	List(ctx context.Context) ([]models.Template, error)
	GetByID(ctx context.Context, id uint) (*models.Template, error)
	Create(ctx context.Context, template *models.Template) error
	Save(ctx context.Context, template *models.Template) error
	Delete(ctx context.Context, id uint) error
}

type templateRepository struct {
	db *gorm.DB
}

// NewTemplateRepository returns a new TemplateRepository implementation.
func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) List(ctx context.Context) ([]models.Template, error) {
	var templates []models.Template
	err := cache.Aside(ctx, cache.TemplateListKey, &templates, cache.TemplateTTL, func() error {
		if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&templates).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) GetByID(ctx context.Context, id uint) (*models.Template, error) {
	var template models.Template
	key := cache.TemplateKey(id)

	err := cache.Aside(ctx, key, &template, cache.TemplateTTL, func() error {
		if err := r.db.WithContext(ctx).First(&template, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Template", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &template, nil
}

func (r *templateRepository) Create(ctx context.Context, template *models.Template) error {
	if err := r.db.WithContext(ctx).Create(template).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TemplateListKey)
	return nil
}

func (r *templateRepository) Save(ctx context.Context, template *models.Template) error {
	if err := r.db.WithContext(ctx).Save(template).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateTemplate(ctx, template.ID)
	return nil
}

func (r *templateRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Template{}, id)
	if result.Error != nil {
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Template", id)
	}
	cache.InvalidateTemplate(ctx, id)
	return nil
}
