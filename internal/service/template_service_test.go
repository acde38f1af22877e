package service

import (
	"context"
	"errors"
	"testing"

	"postpilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// templateRepoStub is a stub for repository.TemplateRepository.
type templateRepoStub struct {
	listFn    func(context.Context) ([]models.Template, error)
	getByIDFn func(context.Context, uint) (*models.Template, error)
	createFn  func(context.Context, *models.Template) error
	saveFn    func(context.Context, *models.Template) error
	deleteFn  func(context.Context, uint) error
}

func (s *templateRepoStub) List(ctx context.Context) ([]models.Template, error) {
	return s.listFn(ctx)
}
func (s *templateRepoStub) GetByID(ctx context.Context, id uint) (*models.Template, error) {
	return s.getByIDFn(ctx, id)
}
func (s *templateRepoStub) Create(ctx context.Context, template *models.Template) error {
	return s.createFn(ctx, template)
}
func (s *templateRepoStub) Save(ctx context.Context, template *models.Template) error {
	return s.saveFn(ctx, template)
}
func (s *templateRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func TestCreateTemplate_Validation(t *testing.T) {
	svc := NewTemplateService(&templateRepoStub{}, &reconcilerStub{})
	ctx := context.Background()

	_, err := svc.CreateTemplate(ctx, CreateTemplateInput{ImagePath: "a.png"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))

	_, err = svc.CreateTemplate(ctx, CreateTemplateInput{Name: "Launch"})
	require.Error(t, err)
	assert.True(t, models.IsValidation(err))
}

func TestUpdateTemplate_ReconcilesReplacedImage(t *testing.T) {
	stored := &models.Template{ID: 1, Name: "Launch", ImagePath: "uploads/old.png"}
	repo := &templateRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.Template, error) { return stored, nil },
		saveFn:    func(_ context.Context, _ *models.Template) error { return nil },
	}
	rec := &reconcilerStub{}
	svc := NewTemplateService(repo, rec)

	updated, err := svc.UpdateTemplate(context.Background(), 1, UpdateTemplateInput{
		ImagePath: "uploads/new.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "uploads/new.png", updated.ImagePath)
	assert.Equal(t, []string{"uploads/old.png"}, rec.deleted)
}

func TestUpdateTemplate_FailedSaveSkipsReconciliation(t *testing.T) {
	stored := &models.Template{ID: 1, Name: "Launch", ImagePath: "uploads/old.png"}
	repo := &templateRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.Template, error) { return stored, nil },
		saveFn: func(_ context.Context, _ *models.Template) error {
			return models.NewInternalError(errors.New("pq: connection reset"))
		},
	}
	rec := &reconcilerStub{}
	svc := NewTemplateService(repo, rec)

	_, err := svc.UpdateTemplate(context.Background(), 1, UpdateTemplateInput{ImagePath: "uploads/new.png"})
	require.Error(t, err)
	assert.Empty(t, rec.deleted)
}

func TestDeleteTemplate_ReconcilesImageAfterDelete(t *testing.T) {
	stored := &models.Template{ID: 1, Name: "Launch", ImagePath: "uploads/old.png"}
	repo := &templateRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.Template, error) { return stored, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
	}
	rec := &reconcilerStub{}
	svc := NewTemplateService(repo, rec)

	require.NoError(t, svc.DeleteTemplate(context.Background(), 1))
	assert.Equal(t, []string{"uploads/old.png"}, rec.deleted)
}

func TestDeleteTemplate_FailedDeleteKeepsImage(t *testing.T) {
	stored := &models.Template{ID: 1, Name: "Launch", ImagePath: "uploads/old.png"}
	repo := &templateRepoStub{
		getByIDFn: func(_ context.Context, _ uint) (*models.Template, error) { return stored, nil },
		deleteFn: func(_ context.Context, _ uint) error {
			return models.NewInternalError(errors.New("pq: connection reset"))
		},
	}
	rec := &reconcilerStub{}
	svc := NewTemplateService(repo, rec)

	require.Error(t, svc.DeleteTemplate(context.Background(), 1))
	assert.Empty(t, rec.deleted)
}
