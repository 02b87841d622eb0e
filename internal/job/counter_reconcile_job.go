package job

import (
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/pkg/redis"
	"Lodestone/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"
)

// CounterReconcileJob 定时对账任务：
// 1. 用投票行重算投票选项与评论的冗余计数
// 2. 将 Redis 中累积的下载计数回刷到数据库
type CounterReconcileJob struct {
	pollRepo    repository.PollRepo
	commentRepo repository.CommentRepo
	releaseRepo repository.ReleaseRepo
}

func NewCounterReconcileJob(pollRepo repository.PollRepo, commentRepo repository.CommentRepo, releaseRepo repository.ReleaseRepo) *CounterReconcileJob {
	return &CounterReconcileJob{
		pollRepo:    pollRepo,
		commentRepo: commentRepo,
		releaseRepo: releaseRepo,
	}
}

func (s *CounterReconcileJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	start := time.Now()
	log.Info("计数对账任务开始")

	if err := s.pollRepo.ReconcileVoteCounts(ctx); err != nil {
		log.Error("投票计数对账失败", "err", err)
	}
	if err := s.commentRepo.ReconcileVoteCounts(ctx); err != nil {
		log.Error("评论计数对账失败", "err", err)
	}
	s.flushDownloadCounts(ctx)

	log.Info("计数对账任务结束", "cost", time.Since(start))
}

// flushDownloadCounts 将脏集合改名为处理中集合，再逐个回刷
// 改名保证回刷期间新产生的计数不会丢失
func (s *CounterReconcileJob) flushDownloadCounts(ctx context.Context) {
	processingKey := consts.FileDownloadDirty + ":processing"
	if err := redis.Rename(ctx, consts.FileDownloadDirty, processingKey); err != nil {
		// 脏集合不存在说明周期内没有下载
		return
	}

	ids, err := redis.GetSet(ctx, processingKey)
	if err != nil {
		log.Error("读取下载计数脏集合失败", "err", err)
		return
	}

	for _, idStr := range ids {
		fileID, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			continue
		}

		countKey := consts.FileDownloadKey + idStr
		delta, err := redis.GetInt64(ctx, countKey)
		if err != nil || delta == 0 {
			continue
		}

		if err := s.releaseRepo.AddDownloadCount(ctx, fileID, delta); err != nil {
			log.Error("回刷下载计数失败", "file_id", fileID, "err", err)
			continue
		}
		_ = redis.DeleteKey(ctx, countKey)
	}

	_ = redis.DeleteKey(ctx, processingKey)
}
