package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/repository"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPollService(t *testing.T) (PollService, repository.PollRepo, *gorm.DB) {
	db := setupDB(t)
	pollRepo := repository.NewPollRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	postRepo := repository.NewPostRepo(db)
	return NewPollService(pollRepo, projectRepo, postRepo), pollRepo, db
}

func createPoll(t *testing.T, svc PollService, endDate *time.Time, options ...string) *dto.PollDTO {
	t.Helper()
	poll, err := svc.CreatePoll(context.Background(), 1, &dto.PollCreateDTO{
		Question: "下个版本优先做什么？",
		EndDate:  endDate,
		Options:  options,
	})
	require.NoError(t, err)
	return poll
}

func TestCreatePollTooFewOptions(t *testing.T) {
	svc, _, _ := newPollService(t)

	_, err := svc.CreatePoll(context.Background(), 1, &dto.PollCreateDTO{
		Question: "只有一个选项",
		Options:  []string{"A"},
	})
	assert.ErrorIs(t, err, ErrPollTooFewOptions)
}

func TestVoteToggle(t *testing.T) {
	svc, pollRepo, _ := newPollService(t)
	ctx := context.Background()
	poll := createPoll(t, svc, nil, "选项A", "选项B")
	optA, optB := poll.Options[0].ID, poll.Options[1].ID

	// 首投创建
	result, err := svc.Vote(ctx, 42, poll.ID, optA)
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionCreated), result.Action)
	assert.Equal(t, 1, result.Poll.Options[0].VotesCount)
	require.NotNil(t, result.Poll.UserVoteID)
	assert.Equal(t, optA, *result.Poll.UserVoteID)

	// 同一选项再投 = 撤销
	result, err = svc.Vote(ctx, 42, poll.ID, optA)
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionRemoved), result.Action)
	assert.Equal(t, 0, result.Poll.Options[0].VotesCount)
	assert.Nil(t, result.Poll.UserVoteID)

	// 改投其他选项
	_, err = svc.Vote(ctx, 42, poll.ID, optA)
	require.NoError(t, err)
	result, err = svc.Vote(ctx, 42, poll.ID, optB)
	require.NoError(t, err)
	assert.Equal(t, string(repository.VoteActionUpdated), result.Action)
	assert.Equal(t, 0, result.Poll.Options[0].VotesCount)
	assert.Equal(t, 1, result.Poll.Options[1].VotesCount)

	// 计数与投票行数一致
	count, err := pollRepo.CountVotes(ctx, poll.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, result.Poll.TotalVotes)
}

func TestVoteOptionNotInPoll(t *testing.T) {
	svc, _, _ := newPollService(t)
	ctx := context.Background()
	pollA := createPoll(t, svc, nil, "A1", "A2")
	pollB := createPoll(t, svc, nil, "B1", "B2")

	_, err := svc.Vote(ctx, 7, pollA.ID, pollB.Options[0].ID)
	assert.ErrorIs(t, err, ErrPollOptionNotFound)
}

func TestLazyFinalizeOnRead(t *testing.T) {
	svc, _, db := newPollService(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Hour)
	poll := createPoll(t, svc, &past, "A", "B")

	got, err := svc.GetPoll(ctx, poll.ID, 0)
	require.NoError(t, err)
	assert.True(t, got.IsFinalized)
	assert.False(t, got.IsActive)
	assert.True(t, got.IsClosed)
	require.NotNil(t, got.FinalizedAt)

	// 终结状态已落库
	var row model.Poll
	require.NoError(t, db.First(&row, poll.ID).Error)
	assert.True(t, row.IsFinalized)
	assert.False(t, row.IsActive)
}

func TestVoteOnExpiredPoll(t *testing.T) {
	svc, _, _ := newPollService(t)
	ctx := context.Background()
	past := time.Now().Add(-time.Minute)
	poll := createPoll(t, svc, &past, "A", "B")

	_, err := svc.Vote(ctx, 1, poll.ID, poll.Options[0].ID)
	assert.ErrorIs(t, err, ErrPollFinalized)
}

func TestFinalizeIsTerminal(t *testing.T) {
	svc, _, _ := newPollService(t)
	ctx := context.Background()
	poll := createPoll(t, svc, nil, "A", "B")

	require.NoError(t, svc.FinalizePoll(ctx, 1, true, poll.ID))

	// 重复终结被拒绝
	assert.ErrorIs(t, svc.FinalizePoll(ctx, 1, true, poll.ID), ErrPollFinalized)
	// 终结后不可重新开放
	assert.ErrorIs(t, svc.SetPollActive(ctx, 1, true, poll.ID, true), ErrPollFinalized)
	// 终结后不可编辑
	question := "改个问题"
	_, err := svc.UpdatePoll(ctx, 1, true, poll.ID, &dto.PollUpdateDTO{Question: &question})
	assert.ErrorIs(t, err, ErrPollFinalized)
}

func TestVoteOnDeactivatedPoll(t *testing.T) {
	svc, _, _ := newPollService(t)
	ctx := context.Background()
	poll := createPoll(t, svc, nil, "A", "B")

	require.NoError(t, svc.SetPollActive(ctx, 1, true, poll.ID, false))
	_, err := svc.Vote(ctx, 1, poll.ID, poll.Options[0].ID)
	assert.ErrorIs(t, err, ErrPollInactive)
}

func TestUpdatePollOptionTextDiff(t *testing.T) {
	svc, _, _ := newPollService(t)
	ctx := context.Background()
	poll := createPoll(t, svc, nil, "A", "B", "C")
	optA, optB, optC := poll.Options[0].ID, poll.Options[1].ID, poll.Options[2].ID

	// A、B 各有一票
	_, err := svc.Vote(ctx, 10, poll.ID, optA)
	require.NoError(t, err)
	_, err = svc.Vote(ctx, 11, poll.ID, optB)
	require.NoError(t, err)

	// 新集合保留 A、C，去掉 B，新增 D
	updated, err := svc.UpdatePoll(ctx, 1, true, poll.ID, &dto.PollUpdateDTO{
		Options: []string{"A", "C", "D"},
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 3)

	byText := make(map[string]*dto.PollOptionDTO)
	for _, opt := range updated.Options {
		byText[opt.OptionText] = opt
	}

	// 文本保留的选项连 ID 和票数一起保留
	assert.Equal(t, optA, byText["A"].ID)
	assert.Equal(t, 1, byText["A"].VotesCount)
	assert.Equal(t, optC, byText["C"].ID)
	// 新选项从零计票
	assert.Equal(t, 0, byText["D"].VotesCount)
	assert.NotContains(t, byText, "B")

	// B 的投票行随选项一起删除
	assert.Equal(t, 1, updated.TotalVotes)
}

func TestPollManagePermission(t *testing.T) {
	svc, _, db := newPollService(t)
	ctx := context.Background()

	project := seedProject(t, db, 5, "lodestone")
	poll, err := svc.CreatePoll(ctx, 5, &dto.PollCreateDTO{
		Question:  "项目投票",
		ProjectID: project.ID,
		Options:   []string{"A", "B"},
	})
	require.NoError(t, err)

	// 编辑权跟随项目所有者
	question := "改个问题"
	_, err = svc.UpdatePoll(ctx, 99, false, poll.ID, &dto.PollUpdateDTO{Question: &question})
	assert.ErrorIs(t, err, UnauthorizedError)
	_, err = svc.UpdatePoll(ctx, 5, false, poll.ID, &dto.PollUpdateDTO{Question: &question})
	assert.NoError(t, err)

	// 终结与开关仅限管理员，项目所有者也不行
	assert.ErrorIs(t, svc.SetPollActive(ctx, 5, false, poll.ID, false), UnauthorizedError)
	assert.ErrorIs(t, svc.FinalizePoll(ctx, 5, false, poll.ID), UnauthorizedError)
	assert.NoError(t, svc.FinalizePoll(ctx, 99, true, poll.ID))
}

func TestReconcileVoteCounts(t *testing.T) {
	svc, pollRepo, db := newPollService(t)
	ctx := context.Background()
	poll := createPoll(t, svc, nil, "A", "B")

	_, err := svc.Vote(ctx, 1, poll.ID, poll.Options[0].ID)
	require.NoError(t, err)

	// 人为把冗余计数改坏
	require.NoError(t, db.Model(&model.PollOption{}).
		Where("id = ?", poll.Options[0].ID).
		Update("votes_count", 100).Error)

	require.NoError(t, pollRepo.ReconcileVoteCounts(ctx))

	got, err := svc.GetPoll(ctx, poll.ID, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Options[0].VotesCount)
}
