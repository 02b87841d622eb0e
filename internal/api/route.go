package api

import (
	"Lodestone/internal/api/config"
	"Lodestone/internal/api/middleware"
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	rl := config.Cfg.RateLimit
	voteLimit := middleware.RateLimit(rl.VoteLimit, rl.WindowSeconds)
	uploadLimit := middleware.RateLimit(rl.UploadLimit, rl.WindowSeconds)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong"})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.UserHandler.Register)
			authGroup.POST("/login", group.UserHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.UserHandler.Logout)
			}
		}

		userGroup := apiGroup.Group("/user")
		userGroup.Use(middleware.AuthMiddleware())
		{
			userGroup.GET("/info", group.UserHandler.GetUserInfo)
		}

		// 需要登录 & 拥有 admin 角色
		usersGroup := apiGroup.Group("/users")
		usersGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			usersGroup.GET("", group.UserHandler.ListUsers)
			usersGroup.POST("/:user_id/ban", group.UserHandler.BanUser)
			usersGroup.POST("/:user_id/unban", group.UserHandler.UnbanUser)
			usersGroup.POST("/:user_id/role", group.UserHandler.AddUserRole)
			usersGroup.DELETE("/:user_id/role", group.UserHandler.DeleteUserRole)
		}

		apiGroup.GET("/roles", middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin), group.UserHandler.GetAllRoles)

		projectGroup := apiGroup.Group("/projects")
		{
			projectGroup.GET("", group.ProjectHandler.ListProjects)
			projectGroup.GET("/:project_id", group.ProjectHandler.GetProject)
			projectGroup.GET("/:project_id/posts", group.PostHandler.ListPostsByProject)
			projectGroup.GET("/:project_id/releases", group.ReleaseHandler.ListReleasesByProject)
			projectGroup.GET("/:project_id/changelogs", group.ChangelogHandler.ListChangelogsByProject)

			authOptGroup := projectGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:project_id/polls", group.PollHandler.ListPollsByProject)
			}

			loggedGroup := projectGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.ProjectHandler.CreateProject)
				loggedGroup.PUT("/:project_id", group.ProjectHandler.UpdateProject)
				loggedGroup.DELETE("/:project_id", group.ProjectHandler.DeleteProject)
			}
		}

		// slug 与数字 ID 路由分离，避免同级通配冲突
		apiGroup.GET("/project/slug/:slug", group.ProjectHandler.GetProjectBySlug)

		postGroup := apiGroup.Group("/posts")
		{
			authOptGroup := postGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/:post_id/comments", group.CommentHandler.GetCommentTree)
			}

			loggedGroup := postGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.PostHandler.CreatePost)
				loggedGroup.PUT("/:post_id", group.PostHandler.UpdatePost)
				loggedGroup.DELETE("/:post_id", group.PostHandler.DeletePost)

				loggedGroup.POST("/:post_id/polls/:poll_id", group.PostHandler.AttachPoll)
				loggedGroup.DELETE("/:post_id/polls/:poll_id", group.PostHandler.DetachPoll)
				loggedGroup.POST("/:post_id/releases/:release_id", group.PostHandler.AttachRelease)
				loggedGroup.DELETE("/:post_id/releases/:release_id", group.PostHandler.DetachRelease)
			}
		}

		pollGroup := apiGroup.Group("/polls")
		{
			authOptGroup := pollGroup.Group("")
			authOptGroup.Use(middleware.AuthOptionalMiddleware())
			{
				authOptGroup.GET("/:poll_id", group.PollHandler.GetPoll)
			}

			loggedGroup := pollGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.PollHandler.CreatePoll)
				loggedGroup.PUT("/:poll_id", group.PollHandler.UpdatePoll)
				loggedGroup.DELETE("/:poll_id", group.PollHandler.DeletePoll)
				loggedGroup.POST("/:poll_id/finalize", group.PollHandler.FinalizePoll)
				loggedGroup.POST("/:poll_id/activate", group.PollHandler.ActivatePoll)
				loggedGroup.POST("/:poll_id/deactivate", group.PollHandler.DeactivatePoll)
				loggedGroup.POST("/:poll_id/vote", voteLimit, group.PollHandler.Vote)
			}
		}

		commentGroup := apiGroup.Group("/comments")
		{
			commentGroup.GET("/:comment_id/history", group.CommentHandler.GetHistory)

			loggedGroup := commentGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.CommentHandler.CreateComment)
				loggedGroup.PUT("/:comment_id", group.CommentHandler.UpdateComment)
				loggedGroup.DELETE("/:comment_id", group.CommentHandler.DeleteComment)
				loggedGroup.POST("/:comment_id/vote", voteLimit, group.CommentHandler.Vote)
			}
		}

		releaseGroup := apiGroup.Group("/releases")
		{
			releaseGroup.GET("/:release_id", group.ReleaseHandler.GetRelease)

			loggedGroup := releaseGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.ReleaseHandler.CreateRelease)
				loggedGroup.PUT("/:release_id", group.ReleaseHandler.UpdateRelease)
				loggedGroup.DELETE("/:release_id", group.ReleaseHandler.DeleteRelease)
				loggedGroup.POST("/:release_id/files", uploadLimit, group.ReleaseHandler.UploadFile)
			}
		}

		apiGroup.GET("/files/:file_id/download", group.ReleaseHandler.DownloadFile)

		changelogGroup := apiGroup.Group("/changelogs")
		{
			changelogGroup.GET("/:changelog_id", group.ChangelogHandler.GetChangelog)

			loggedGroup := changelogGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("", group.ChangelogHandler.CreateChangelog)
				loggedGroup.PUT("/:changelog_id", group.ChangelogHandler.UpdateChangelog)
				loggedGroup.DELETE("/:changelog_id", group.ChangelogHandler.DeleteChangelog)
			}
		}
	}

	return r
}
