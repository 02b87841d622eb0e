package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentService(t *testing.T) (CommentService, *gorm.DB, uint64) {
	db := setupDB(t)
	commentRepo := repository.NewCommentRepo(db)
	postRepo := repository.NewPostRepo(db)
	svc := NewCommentService(commentRepo, postRepo)

	project := seedProject(t, db, 1, "comments")
	post := seedPost(t, db, project.ID, 1)
	return svc, db, post.ID
}

func TestCreateCommentChecks(t *testing.T) {
	svc, db, postID := newCommentService(t)
	ctx := context.Background()

	// 帖子不存在
	_, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: 9999, Content: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)

	// 父评论不存在
	_, err = svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, ParentID: 777, Content: "hi"})
	assert.ErrorIs(t, err, ErrCommentNotFound)

	// 父评论属于其他帖子
	otherProject := seedProject(t, db, 1, "comments-other")
	otherPost := seedPost(t, db, otherProject.ID, 1)
	other, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: otherPost.ID, Content: "别处"})
	require.NoError(t, err)

	_, err = svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, ParentID: other.ID, Content: "跨帖回复"})
	assert.ErrorIs(t, err, ErrParamInvalid)
}

func TestCommentEditHistory(t *testing.T) {
	svc, _, postID := newCommentService(t)
	ctx := context.Background()

	comment, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, Content: "版本一"})
	require.NoError(t, err)

	_, err = svc.UpdateComment(ctx, 1, false, comment.ID, "版本二")
	require.NoError(t, err)
	updated, err := svc.UpdateComment(ctx, 1, false, comment.ID, "版本三")
	require.NoError(t, err)
	assert.Equal(t, "版本三", updated.Content)

	// 每次编辑留下一条历史，新在前
	histories, err := svc.GetHistory(ctx, comment.ID)
	require.NoError(t, err)
	require.Len(t, histories, 2)
	assert.Equal(t, "版本二", histories[0].Content)
	assert.Equal(t, "版本一", histories[1].Content)
}

func TestCommentPermission(t *testing.T) {
	svc, _, postID := newCommentService(t)
	ctx := context.Background()

	comment, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, Content: "我的评论"})
	require.NoError(t, err)

	// 非作者不可编辑/删除
	_, err = svc.UpdateComment(ctx, 2, false, comment.ID, "篡改")
	assert.ErrorIs(t, err, UnauthorizedError)
	assert.ErrorIs(t, svc.DeleteComment(ctx, 2, false, comment.ID), UnauthorizedError)

	// 管理员可以
	_, err = svc.UpdateComment(ctx, 2, true, comment.ID, "管理员编辑")
	assert.NoError(t, err)
}

func TestCommentSoftDeleteKeepsTree(t *testing.T) {
	svc, _, postID := newCommentService(t)
	ctx := context.Background()

	root, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, Content: "根评论"})
	require.NoError(t, err)
	reply, err := svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: postID, ParentID: root.ID, Content: "回复"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteComment(ctx, 1, false, root.ID))

	tree, err := svc.GetCommentTree(ctx, postID)
	require.NoError(t, err)
	require.Len(t, tree, 1)
	assert.True(t, tree[0].IsDeleted)
	assert.Equal(t, consts.DeletedContent, tree[0].Content)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, reply.ID, tree[0].Replies[0].ID)

	// 已删除的评论不可再编辑、投票或重复删除
	_, err = svc.UpdateComment(ctx, 1, false, root.ID, "复活")
	assert.ErrorIs(t, err, ErrCommentDeleted)
	_, err = svc.Vote(ctx, 3, root.ID, "up")
	assert.ErrorIs(t, err, ErrCommentDeleted)
	assert.ErrorIs(t, svc.DeleteComment(ctx, 1, false, root.ID), ErrCommentDeleted)
}

func TestCommentVoteToggle(t *testing.T) {
	svc, _, postID := newCommentService(t)
	ctx := context.Background()

	comment, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, Content: "热评"})
	require.NoError(t, err)

	// 首投创建
	result, err := svc.Vote(ctx, 9, comment.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionCreated), result.Action)
	assert.Equal(t, 1, result.Upvotes)

	// 同方向再投 = 撤销
	result, err = svc.Vote(ctx, 9, comment.ID, "up")
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionRemoved), result.Action)
	assert.Equal(t, 0, result.Upvotes)

	// 反方向切换
	_, err = svc.Vote(ctx, 9, comment.ID, "up")
	require.NoError(t, err)
	result, err = svc.Vote(ctx, 9, comment.ID, "down")
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionUpdated), result.Action)
	assert.Equal(t, 0, result.Upvotes)
	assert.Equal(t, 1, result.Downvotes)
}

func TestCommentTreeOrder(t *testing.T) {
	svc, _, postID := newCommentService(t)
	ctx := context.Background()

	first, err := svc.CreateComment(ctx, 1, &dto.CommentCreateDTO{PostID: postID, Content: "一楼"})
	require.NoError(t, err)
	second, err := svc.CreateComment(ctx, 2, &dto.CommentCreateDTO{PostID: postID, Content: "二楼"})
	require.NoError(t, err)
	child, err := svc.CreateComment(ctx, 3, &dto.CommentCreateDTO{PostID: postID, ParentID: first.ID, Content: "一楼的回复"})
	require.NoError(t, err)
	grandchild, err := svc.CreateComment(ctx, 4, &dto.CommentCreateDTO{PostID: postID, ParentID: child.ID, Content: "楼中楼"})
	require.NoError(t, err)

	tree, err := svc.GetCommentTree(ctx, postID)
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, first.ID, tree[0].ID)
	assert.Equal(t, second.ID, tree[1].ID)
	require.Len(t, tree[0].Replies, 1)
	assert.Equal(t, child.ID, tree[0].Replies[0].ID)
	require.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, grandchild.ID, tree[0].Replies[0].Replies[0].ID)
}
