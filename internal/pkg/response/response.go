package response

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/service"
	"errors"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
)

// Success 成功返回封装
func Success(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusOK, dto.Response{
		Success: true,
		Message: "success",
		Data:    data,
	})
}

// Created 创建成功返回封装
func Created(ctx *gin.Context, data interface{}) {
	ctx.JSON(http.StatusCreated, dto.Response{
		Success: true,
		Message: "created",
		Data:    data,
	})
}

// Fail 失败返回封装
func Fail(c *gin.Context, status int, message string) {
	c.JSON(status, dto.Response{
		Success: false,
		Error:   message,
	})
}

// Error 将错误翻译为统一响应
func Error(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		Fail(c, http.StatusBadRequest, "参数错误")
		return
	}

	var unmarshalTypeError *json.UnmarshalTypeError
	if errors.As(err, &unmarshalTypeError) {
		Fail(c, http.StatusBadRequest, "Json错误")
		return
	}

	status, ok := service.ErrorMap[err]
	if !ok {
		status = http.StatusInternalServerError
		log.Error("Error", "err", err)
	}
	Fail(c, status, err.Error())
}
