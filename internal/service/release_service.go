package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/pkg/minio"
	"Lodestone/internal/pkg/redis"
	"Lodestone/internal/pkg/util"
	"Lodestone/internal/repository"
	"context"
	"io"
	log "log/slog"
	"strconv"

	"github.com/jinzhu/copier"
)

type ReleaseService interface {
	CreateRelease(ctx context.Context, userID uint64, isAdmin bool, req *dto.ReleaseCreateDTO) (*dto.ReleaseDTO, error)
	GetRelease(ctx context.Context, id uint64) (*dto.ReleaseDTO, error)
	ListReleasesByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*dto.ReleaseDTO, error)
	UpdateRelease(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.ReleaseUpdateDTO) (*dto.ReleaseDTO, error)
	DeleteRelease(ctx context.Context, userID uint64, isAdmin bool, id uint64) error

	UploadFile(ctx context.Context, userID uint64, isAdmin bool, releaseID uint64, reader io.Reader, size int64, contentType, originalName string) (*dto.ReleaseFileDTO, error)
	DownloadFile(ctx context.Context, fileID uint64) (*dto.DownloadDTO, error)
}

type ReleaseServiceImpl struct {
	releaseRepo repository.ReleaseRepo
	projectRepo repository.ProjectRepo
}

func NewReleaseService(releaseRepo repository.ReleaseRepo, projectRepo repository.ProjectRepo) ReleaseService {
	return &ReleaseServiceImpl{
		releaseRepo: releaseRepo,
		projectRepo: projectRepo,
	}
}

// CreateRelease 仅项目所有者与管理员可发布
func (s *ReleaseServiceImpl) CreateRelease(ctx context.Context, userID uint64, isAdmin bool, req *dto.ReleaseCreateDTO) (*dto.ReleaseDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.OwnerID != userID && !isAdmin {
		return nil, UnauthorizedError
	}

	release := &model.Release{UserID: userID, IsPublished: true}
	if err := copier.Copy(release, req); err != nil {
		return nil, err
	}

	if err := s.releaseRepo.CreateRelease(ctx, release); err != nil {
		return nil, err
	}
	return buildReleaseDTO(release), nil
}

func (s *ReleaseServiceImpl) GetRelease(ctx context.Context, id uint64) (*dto.ReleaseDTO, error) {
	release, err := s.releaseRepo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if release == nil {
		return nil, ErrReleaseNotFound
	}
	return buildReleaseDTO(release), nil
}

func (s *ReleaseServiceImpl) ListReleasesByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*dto.ReleaseDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	releases, err := s.releaseRepo.ListReleasesByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ReleaseDTO, 0, len(releases))
	for _, r := range releases {
		result = append(result, buildReleaseDTO(r))
	}
	return result, nil
}

func (s *ReleaseServiceImpl) UpdateRelease(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.ReleaseUpdateDTO) (*dto.ReleaseDTO, error) {
	release, err := s.checkReleaseManage(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.Version != nil {
		release.Version = *req.Version
	}
	if req.Title != nil {
		release.Title = *req.Title
	}
	if req.Notes != nil {
		release.Notes = *req.Notes
	}
	if req.IsPublished != nil {
		release.IsPublished = *req.IsPublished
	}

	if err := s.releaseRepo.UpdateRelease(ctx, release); err != nil {
		return nil, err
	}
	return s.GetRelease(ctx, id)
}

// DeleteRelease 数据库删除成功后尽力清理存储侧对象
// 对象删除失败只记录日志，不影响业务结果
func (s *ReleaseServiceImpl) DeleteRelease(ctx context.Context, userID uint64, isAdmin bool, id uint64) error {
	release, err := s.checkReleaseManage(ctx, id, userID, isAdmin)
	if err != nil {
		return err
	}

	if err := s.releaseRepo.DeleteRelease(ctx, id); err != nil {
		return err
	}

	for _, file := range release.Files {
		objectName := file.FileName
		go func() {
			if err := minio.DeleteFile(context.Background(), objectName); err != nil {
				log.Warn("删除存储对象失败", "object", objectName, "err", err)
			}
		}()
	}
	return nil
}

func (s *ReleaseServiceImpl) UploadFile(ctx context.Context, userID uint64, isAdmin bool, releaseID uint64, reader io.Reader, size int64, contentType, originalName string) (*dto.ReleaseFileDTO, error) {
	release, err := s.checkReleaseManage(ctx, releaseID, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	objectName := util.SanitizeObjectName(originalName)
	if _, err := minio.UploadFile(ctx, objectName, reader, size, contentType); err != nil {
		return nil, err
	}

	file := &model.ReleaseFile{
		ReleaseID:    release.ID,
		FileName:     objectName,
		OriginalName: originalName,
		Size:         size,
		ContentType:  contentType,
	}
	if err := s.releaseRepo.CreateFile(ctx, file); err != nil {
		// 数据库落库失败时回收已上传的对象
		if delErr := minio.DeleteFile(ctx, objectName); delErr != nil {
			log.Warn("回收存储对象失败", "object", objectName, "err", delErr)
		}
		return nil, err
	}
	return buildReleaseFileDTO(file), nil
}

// DownloadFile 返回下载地址，下载计数先进 Redis，由定时任务回刷数据库
// 计数失败不阻塞下载
func (s *ReleaseServiceImpl) DownloadFile(ctx context.Context, fileID uint64) (*dto.DownloadDTO, error) {
	file, err := s.releaseRepo.GetFileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}

	idStr := strconv.FormatUint(fileID, 10)
	if _, err := redis.Incr(ctx, consts.FileDownloadKey+idStr); err != nil {
		log.Warn("下载计数失败", "file_id", fileID, "err", err)
	} else if err := redis.SAdd(ctx, consts.FileDownloadDirty, idStr); err != nil {
		log.Warn("下载计数标脏失败", "file_id", fileID, "err", err)
	}

	return &dto.DownloadDTO{URL: minio.GetPublicURL(file.FileName)}, nil
}

func (s *ReleaseServiceImpl) checkReleaseManage(ctx context.Context, id, userID uint64, isAdmin bool) (*model.Release, error) {
	release, err := s.releaseRepo.GetRelease(ctx, id)
	if err != nil {
		return nil, err
	}
	if release == nil {
		return nil, ErrReleaseNotFound
	}
	if release.UserID == userID || isAdmin {
		return release, nil
	}

	// 发行人之外，项目所有者同样可管理
	project, err := s.projectRepo.GetProject(ctx, release.ProjectID)
	if err != nil {
		return nil, err
	}
	if project != nil && project.OwnerID == userID {
		return release, nil
	}
	return nil, UnauthorizedError
}

func buildReleaseDTO(release *model.Release) *dto.ReleaseDTO {
	files := make([]*dto.ReleaseFileDTO, 0, len(release.Files))
	for i := range release.Files {
		files = append(files, buildReleaseFileDTO(&release.Files[i]))
	}
	return &dto.ReleaseDTO{
		ID:          release.ID,
		ProjectID:   release.ProjectID,
		UserID:      release.UserID,
		Version:     release.Version,
		Title:       release.Title,
		Notes:       release.Notes,
		IsPublished: release.IsPublished,
		Files:       files,
		CreatedAt:   release.CreatedAt,
		UpdatedAt:   release.UpdatedAt,
	}
}

func buildReleaseFileDTO(file *model.ReleaseFile) *dto.ReleaseFileDTO {
	return &dto.ReleaseFileDTO{
		ID:            file.ID,
		OriginalName:  file.OriginalName,
		Size:          file.Size,
		ContentType:   file.ContentType,
		DownloadCount: file.DownloadCount,
		CreatedAt:     file.CreatedAt,
	}
}
