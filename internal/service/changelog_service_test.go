package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangelogCRUD(t *testing.T) {
	db := setupDB(t)
	svc := NewChangelogService(repository.NewChangelogRepo(db), repository.NewProjectRepo(db))
	ctx := context.Background()
	project := seedProject(t, db, 1, "changelog-crud")

	// 未指定发布时间时取当前时间
	created, err := svc.CreateChangelog(ctx, 1, false, &dto.ChangelogCreateDTO{
		ProjectID: project.ID,
		Version:   "1.0.0",
		Content:   "初始版本",
	})
	require.NoError(t, err)
	assert.False(t, created.PublishedAt.IsZero())

	publishedAt := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	dated, err := svc.CreateChangelog(ctx, 1, false, &dto.ChangelogCreateDTO{
		ProjectID:   project.ID,
		Version:     "1.1.0",
		Content:     "新增投票",
		PublishedAt: &publishedAt,
	})
	require.NoError(t, err)
	assert.True(t, dated.PublishedAt.Equal(publishedAt))

	content := "新增投票与评论"
	updated, err := svc.UpdateChangelog(ctx, 1, false, dated.ID, &dto.ChangelogUpdateDTO{Content: &content})
	require.NoError(t, err)
	assert.Equal(t, content, updated.Content)
	assert.Equal(t, "1.1.0", updated.Version)

	list, err := svc.ListChangelogsByProject(ctx, project.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteChangelog(ctx, 1, false, created.ID))
	_, err = svc.GetChangelog(ctx, created.ID)
	assert.ErrorIs(t, err, ErrChangelogNotFound)
}

func TestChangelogPermission(t *testing.T) {
	db := setupDB(t)
	svc := NewChangelogService(repository.NewChangelogRepo(db), repository.NewProjectRepo(db))
	ctx := context.Background()
	project := seedProject(t, db, 1, "changelog-perm")

	_, err := svc.CreateChangelog(ctx, 2, false, &dto.ChangelogCreateDTO{
		ProjectID: project.ID,
		Version:   "0.1.0",
		Content:   "草稿",
	})
	assert.ErrorIs(t, err, UnauthorizedError)

	changelog, err := svc.CreateChangelog(ctx, 99, true, &dto.ChangelogCreateDTO{
		ProjectID: project.ID,
		Version:   "0.1.0",
		Content:   "管理员代发",
	})
	require.NoError(t, err)

	content := "更新"
	_, err = svc.UpdateChangelog(ctx, 2, false, changelog.ID, &dto.ChangelogUpdateDTO{Content: &content})
	assert.ErrorIs(t, err, UnauthorizedError)
	_, err = svc.UpdateChangelog(ctx, 1, false, changelog.ID, &dto.ChangelogUpdateDTO{Content: &content})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteChangelog(ctx, 2, false, changelog.ID), UnauthorizedError)
	require.NoError(t, svc.DeleteChangelog(ctx, 1, false, changelog.ID))
}
