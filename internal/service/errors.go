package service

import (
	"errors"
	"net/http"
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserExist          = errors.New("用户名已存在")
	ErrUserBan            = errors.New("用户已被封禁")
	ErrUserBanSelf        = errors.New("不能封禁自己")
	ErrUserBanAdmin       = errors.New("不能封禁管理员")
	ErrUserHasRole        = errors.New("用户已拥有此角色")
	ErrRoleNotFound       = errors.New("角色不存在")
	ErrPasswordIncorrect  = errors.New("密码错误")
	ErrProjectNotFound    = errors.New("项目不存在")
	ErrProjectSlugExist   = errors.New("项目标识已存在")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrPollNotFound       = errors.New("投票不存在")
	ErrPollOptionNotFound = errors.New("投票选项不存在")
	ErrPollFinalized      = errors.New("投票已终结")
	ErrPollInactive       = errors.New("投票未开放")
	ErrPollClosed         = errors.New("投票已关闭")
	ErrPollTooFewOptions  = errors.New("投票选项不能少于两个")
	ErrCommentNotFound    = errors.New("评论不存在")
	ErrCommentDeleted     = errors.New("评论已删除")
	ErrVoteTypeInvalid    = errors.New("投票类型错误")
	ErrReleaseNotFound    = errors.New("发行版不存在")
	ErrFileNotFound       = errors.New("文件不存在")
	ErrFileNotSupported   = errors.New("不支持的文件类型")
	ErrChangelogNotFound  = errors.New("更新日志不存在")
	ErrAttachExist        = errors.New("重复挂载")
	ErrAttachNotFound     = errors.New("挂载关系不存在")
	ErrActionDuplicate    = errors.New("重复操作")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到 HTTP 状态码的映射
var ErrorMap = map[error]int{
	ErrParamInvalid:       http.StatusBadRequest,
	ErrUserNotFound:       http.StatusNotFound,
	ErrUserExist:          http.StatusBadRequest,
	ErrUserBan:            http.StatusUnauthorized,
	ErrUserBanSelf:        http.StatusBadRequest,
	ErrUserBanAdmin:       http.StatusBadRequest,
	ErrUserHasRole:        http.StatusBadRequest,
	ErrRoleNotFound:       http.StatusNotFound,
	ErrPasswordIncorrect:  http.StatusUnauthorized,
	ErrProjectNotFound:    http.StatusNotFound,
	ErrProjectSlugExist:   http.StatusBadRequest,
	ErrPostNotFound:       http.StatusNotFound,
	ErrPollNotFound:       http.StatusNotFound,
	ErrPollOptionNotFound: http.StatusNotFound,
	ErrPollFinalized:      http.StatusBadRequest,
	ErrPollInactive:       http.StatusBadRequest,
	ErrPollClosed:         http.StatusBadRequest,
	ErrPollTooFewOptions:  http.StatusBadRequest,
	ErrCommentNotFound:    http.StatusNotFound,
	ErrCommentDeleted:     http.StatusBadRequest,
	ErrVoteTypeInvalid:    http.StatusBadRequest,
	ErrReleaseNotFound:    http.StatusNotFound,
	ErrFileNotFound:       http.StatusNotFound,
	ErrFileNotSupported:   http.StatusBadRequest,
	ErrChangelogNotFound:  http.StatusNotFound,
	ErrAttachExist:        http.StatusBadRequest,
	ErrAttachNotFound:     http.StatusNotFound,
	ErrActionDuplicate:    http.StatusBadRequest,
	UnauthorizedError:     http.StatusForbidden,
	UnExpectedError:       http.StatusInternalServerError,
}
