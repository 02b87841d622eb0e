package api

import "Lodestone/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	UserHandler      *handler.UserHandler
	ProjectHandler   *handler.ProjectHandler
	PostHandler      *handler.PostHandler
	PollHandler      *handler.PollHandler
	CommentHandler   *handler.CommentHandler
	ReleaseHandler   *handler.ReleaseHandler
	ChangelogHandler *handler.ChangelogHandler
}
