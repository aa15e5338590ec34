package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
)

// MessageBody 操作结果响应
type MessageBody struct {
	Message string `json:"message" example:"Book added successfully"`
}

// ErrorBody 错误响应
type ErrorBody struct {
	Error string `json:"error" example:"Book not found"`
}

// JSON 直接返回业务数据
func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Message 返回操作结果提示
func Message(c *gin.Context, status int, message string) {
	c.JSON(status, MessageBody{Message: message})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	if err := uc.Execute(ctx, req); err != nil {
//	    response.Error(c, err, "Failed to update book")
//	    return
//	}
//
// Unexpected错误只返回fallback，原始错误写入请求日志
func Error(c *gin.Context, err error, fallback string) {
	appErr := apperrors.GetAppError(err)
	_ = c.Error(err)

	if appErr.Kind == apperrors.KindUnexpected {
		zerolog.Ctx(c.Request.Context()).Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")

		if fallback == "" {
			fallback = http.StatusText(http.StatusInternalServerError)
		}
		c.JSON(http.StatusInternalServerError, ErrorBody{Error: fallback})
		return
	}

	c.JSON(appErr.Status(), ErrorBody{Error: appErr.Message})
}

// =========================================
// 分页响应结构
// =========================================

// PageMeta 分页元数据
type PageMeta struct {
	CurrentPage int   `json:"currentPage" example:"1"`
	PageSize    int   `json:"pageSize" example:"10"`
	TotalPages  int   `json:"totalPages" example:"3"`
	TotalCount  int64 `json:"totalCount" example:"25"`
}

// PageBody 分页数据封装
type PageBody struct {
	Data interface{} `json:"data"`
	Meta PageMeta    `json:"meta"`
}

// NewPageMeta 创建分页元数据
// totalPages = ceil(total / pageSize)，total为0时为0
func NewPageMeta(page, pageSize int, total int64) PageMeta {
	return PageMeta{
		CurrentPage: page,
		PageSize:    pageSize,
		TotalPages:  TotalPages(total, pageSize),
		TotalCount:  total,
	}
}

// TotalPages 计算总页数
func TotalPages(total int64, pageSize int) int {
	if pageSize < 1 || total <= 0 {
		return 0
	}
	size := int64(pageSize)
	return int((total + size - 1) / size)
}

// SuccessWithPage 分页成功响应
func SuccessWithPage(c *gin.Context, list interface{}, meta PageMeta) {
	c.JSON(http.StatusOK, PageBody{
		Data: list,
		Meta: meta,
	})
}
