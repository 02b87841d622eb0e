package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPostService(t *testing.T) (PostService, PollService, *gorm.DB) {
	db := setupDB(t)
	postRepo := repository.NewPostRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	pollRepo := repository.NewPollRepo(db)
	releaseRepo := repository.NewReleaseRepo(db)
	postSvc := NewPostService(postRepo, projectRepo, pollRepo, releaseRepo)
	pollSvc := NewPollService(pollRepo, projectRepo, postRepo)
	return postSvc, pollSvc, db
}

func TestAttachPollDuplicate(t *testing.T) {
	postSvc, pollSvc, db := newPostService(t)
	ctx := context.Background()

	project := seedProject(t, db, 1, "attach")
	post, err := postSvc.CreatePost(ctx, 1, &dto.PostCreateDTO{
		ProjectID: project.ID,
		Title:     "公告",
		Content:   "正文",
	})
	require.NoError(t, err)

	poll, err := pollSvc.CreatePoll(ctx, 1, &dto.PollCreateDTO{
		Question: "挂载测试",
		Options:  []string{"A", "B"},
	})
	require.NoError(t, err)

	require.NoError(t, postSvc.AttachPoll(ctx, 1, false, post.ID, poll.ID, 0))
	// 重复挂载被拒绝
	assert.ErrorIs(t, postSvc.AttachPoll(ctx, 1, false, post.ID, poll.ID, 0), ErrAttachExist)

	require.NoError(t, postSvc.DetachPoll(ctx, 1, false, post.ID, poll.ID))
	// 解除不存在的挂载
	assert.ErrorIs(t, postSvc.DetachPoll(ctx, 1, false, post.ID, poll.ID), ErrAttachNotFound)
}

func TestPostDetailComputesClosed(t *testing.T) {
	postSvc, pollSvc, db := newPostService(t)
	ctx := context.Background()

	project := seedProject(t, db, 1, "detail")
	post, err := postSvc.CreatePost(ctx, 1, &dto.PostCreateDTO{
		ProjectID: project.ID,
		Title:     "带投票的帖子",
		Content:   "正文",
	})
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	expired, err := pollSvc.CreatePoll(ctx, 1, &dto.PollCreateDTO{
		Question: "已过期",
		EndDate:  &past,
		Options:  []string{"A", "B"},
	})
	require.NoError(t, err)
	open, err := pollSvc.CreatePoll(ctx, 1, &dto.PollCreateDTO{
		Question: "进行中",
		Options:  []string{"A", "B"},
	})
	require.NoError(t, err)

	require.NoError(t, postSvc.AttachPoll(ctx, 1, false, post.ID, expired.ID, 0))
	require.NoError(t, postSvc.AttachPoll(ctx, 1, false, post.ID, open.ID, 1))

	detail, err := postSvc.GetPostDetail(ctx, post.ID, 0)
	require.NoError(t, err)
	require.Len(t, detail.Polls, 2)

	// 即使尚未惰性终结，过期投票在详情里也按已关闭呈现
	assert.Equal(t, expired.ID, detail.Polls[0].ID)
	assert.True(t, detail.Polls[0].IsClosed)
	assert.Equal(t, open.ID, detail.Polls[1].ID)
	assert.False(t, detail.Polls[1].IsClosed)
}

func TestPostPermission(t *testing.T) {
	postSvc, _, db := newPostService(t)
	ctx := context.Background()

	project := seedProject(t, db, 1, "perm")
	post, err := postSvc.CreatePost(ctx, 1, &dto.PostCreateDTO{
		ProjectID: project.ID,
		Title:     "别人的帖子",
		Content:   "正文",
	})
	require.NoError(t, err)

	title := "篡改"
	_, err = postSvc.UpdatePost(ctx, 2, false, post.ID, &dto.PostUpdateDTO{Title: &title})
	assert.ErrorIs(t, err, UnauthorizedError)
	assert.ErrorIs(t, postSvc.DeletePost(ctx, 2, false, post.ID), UnauthorizedError)

	// 管理员可以删除
	require.NoError(t, postSvc.DeletePost(ctx, 2, true, post.ID))
	_, err = postSvc.GetPostDetail(ctx, post.ID, 0)
	assert.ErrorIs(t, err, ErrPostNotFound)
}
