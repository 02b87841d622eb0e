package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectSlugUnique(t *testing.T) {
	db := setupDB(t)
	svc := NewProjectService(repository.NewProjectRepo(db))
	ctx := context.Background()

	created, err := svc.CreateProject(ctx, 1, &dto.ProjectCreateDTO{
		Name: "Lodestone",
		Slug: "lodestone",
	})
	require.NoError(t, err)

	// slug 冲突
	_, err = svc.CreateProject(ctx, 2, &dto.ProjectCreateDTO{
		Name: "另一个",
		Slug: "lodestone",
	})
	assert.ErrorIs(t, err, ErrProjectSlugExist)

	// 按 slug 查询
	got, err := svc.GetProjectBySlug(ctx, "lodestone")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	// 改名到已占用的 slug 同样被拒绝
	other, err := svc.CreateProject(ctx, 2, &dto.ProjectCreateDTO{Name: "B", Slug: "other"})
	require.NoError(t, err)
	slug := "lodestone"
	_, err = svc.UpdateProject(ctx, 2, false, other.ID, &dto.ProjectUpdateDTO{Slug: &slug})
	assert.ErrorIs(t, err, ErrProjectSlugExist)
}

func TestProjectDeleteHidesFromRead(t *testing.T) {
	db := setupDB(t)
	svc := NewProjectService(repository.NewProjectRepo(db))
	ctx := context.Background()

	project, err := svc.CreateProject(ctx, 1, &dto.ProjectCreateDTO{Name: "临时", Slug: "temp"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteProject(ctx, 9, false, project.ID), UnauthorizedError)
	require.NoError(t, svc.DeleteProject(ctx, 1, false, project.ID))

	_, err = svc.GetProject(ctx, project.ID)
	assert.ErrorIs(t, err, ErrProjectNotFound)
	_, err = svc.GetProjectBySlug(ctx, "temp")
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
