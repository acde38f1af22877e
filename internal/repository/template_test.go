package repository

import (
	"context"
	"testing"

	"postpilot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRepository_CRUD(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	tmpl := &models.Template{Name: "Launch announcement", ImagePath: "uploads/usersTemplates/1-a.png"}
	require.NoError(t, repo.Create(ctx, tmpl))
	require.NotZero(t, tmpl.ID)

	got, err := repo.GetByID(ctx, tmpl.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch announcement", got.Name)

	got.Name = "Event recap"
	require.NoError(t, repo.Save(ctx, got))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Event recap", list[0].Name)

	require.NoError(t, repo.Delete(ctx, tmpl.ID))

	_, err = repo.GetByID(ctx, tmpl.ID)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func TestTemplateRepository_DeleteMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewTemplateRepository(db)

	err := repo.Delete(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}
