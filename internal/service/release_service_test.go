package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReleaseCRUD(t *testing.T) {
	db := setupDB(t)
	svc := NewReleaseService(repository.NewReleaseRepo(db), repository.NewProjectRepo(db))
	ctx := context.Background()
	project := seedProject(t, db, 1, "release-crud")

	created, err := svc.CreateRelease(ctx, 1, false, &dto.ReleaseCreateDTO{
		ProjectID: project.ID,
		Version:   "1.0.0",
		Title:     "首个版本",
	})
	require.NoError(t, err)
	assert.True(t, created.IsPublished)
	assert.Equal(t, uint64(1), created.UserID)

	// 显式 is_published=false 覆盖默认值
	hidden := false
	draft, err := svc.CreateRelease(ctx, 1, false, &dto.ReleaseCreateDTO{
		ProjectID:   project.ID,
		Version:     "1.1.0-rc1",
		IsPublished: &hidden,
	})
	require.NoError(t, err)
	assert.False(t, draft.IsPublished)

	notes := "修复若干问题"
	updated, err := svc.UpdateRelease(ctx, 1, false, created.ID, &dto.ReleaseUpdateDTO{Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, "1.0.0", updated.Version)

	list, err := svc.ListReleasesByProject(ctx, project.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteRelease(ctx, 1, false, draft.ID))
	_, err = svc.GetRelease(ctx, draft.ID)
	assert.ErrorIs(t, err, ErrReleaseNotFound)
}

func TestReleasePermission(t *testing.T) {
	db := setupDB(t)
	svc := NewReleaseService(repository.NewReleaseRepo(db), repository.NewProjectRepo(db))
	ctx := context.Background()
	project := seedProject(t, db, 1, "release-perm")

	// 非项目所有者不能发布
	_, err := svc.CreateRelease(ctx, 2, false, &dto.ReleaseCreateDTO{ProjectID: project.ID, Version: "0.1.0"})
	assert.ErrorIs(t, err, UnauthorizedError)

	// 管理员代发，项目所有者仍可管理
	release, err := svc.CreateRelease(ctx, 99, true, &dto.ReleaseCreateDTO{ProjectID: project.ID, Version: "0.1.0"})
	require.NoError(t, err)

	title := "改标题"
	_, err = svc.UpdateRelease(ctx, 2, false, release.ID, &dto.ReleaseUpdateDTO{Title: &title})
	assert.ErrorIs(t, err, UnauthorizedError)

	_, err = svc.UpdateRelease(ctx, 1, false, release.ID, &dto.ReleaseUpdateDTO{Title: &title})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteRelease(ctx, 2, false, release.ID), UnauthorizedError)
	require.NoError(t, svc.DeleteRelease(ctx, 1, false, release.ID))
}
