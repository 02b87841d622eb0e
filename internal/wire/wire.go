package wire

import (
	"Lodestone/internal/api"
	"Lodestone/internal/api/config"
	"Lodestone/internal/api/handler"
	"Lodestone/internal/job"
	"Lodestone/internal/pkg/cron"
	"Lodestone/internal/repository"
	"Lodestone/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	userRolesRepo := repository.NewUserRolesRepo(db)
	projectRepo := repository.NewProjectRepo(db)
	postRepo := repository.NewPostRepo(db)
	pollRepo := repository.NewPollRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	releaseRepo := repository.NewReleaseRepo(db)
	changelogRepo := repository.NewChangelogRepo(db)

	userService := service.NewUserService(userRepo, userRolesRepo)
	userRolesService := service.NewUserRolesService(userRolesRepo, userRepo)
	projectService := service.NewProjectService(projectRepo)
	postService := service.NewPostService(postRepo, projectRepo, pollRepo, releaseRepo)
	pollService := service.NewPollService(pollRepo, projectRepo, postRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	releaseService := service.NewReleaseService(releaseRepo, projectRepo)
	changelogService := service.NewChangelogService(changelogRepo, projectRepo)

	handlers := &api.HandlersGroup{
		UserHandler:      handler.NewUserHandler(userService, userRolesService),
		ProjectHandler:   handler.NewProjectHandler(projectService),
		PostHandler:      handler.NewPostHandler(postService),
		PollHandler:      handler.NewPollHandler(pollService),
		CommentHandler:   handler.NewCommentHandler(commentService),
		ReleaseHandler:   handler.NewReleaseHandler(releaseService),
		ChangelogHandler: handler.NewChangelogHandler(changelogService),
	}

	router := api.SetupRouter(handlers)

	reconcileJob := job.NewCounterReconcileJob(pollRepo, commentRepo, releaseRepo)
	cronMgr := cron.NewCronManager(reconcileJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
