package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind 错误类别(封闭集合)
// 设计说明：
// 1. 业务层只能返回以下四类错误之一
// 2. 接口层通过固定的映射表把Kind转换为HTTP状态码，不再检查任意错误的形状
type Kind int

const (
	// KindUnexpected 未预期的错误(数据库连接失败、驱动错误等)
	KindUnexpected Kind = iota
	// KindInvalidInput 参数错误(缺少字段、分页参数非法、请求体格式错误)
	KindInvalidInput
	// KindNotFound 资源不存在
	KindNotFound
	// KindConflict 业务冲突(如书名重复)
	KindConflict
)

// String 返回Kind的名称(用于日志)
func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "unexpected"
	}
}

// statusTable Kind → HTTP状态码
// Conflict沿用原有行为返回400
var statusTable = map[Kind]int{
	KindInvalidInput: http.StatusBadRequest,
	KindNotFound:     http.StatusNotFound,
	KindConflict:     http.StatusBadRequest,
	KindUnexpected:   http.StatusInternalServerError,
}

// HTTPStatus 返回Kind对应的HTTP状态码
func HTTPStatus(k Kind) int {
	if status, ok := statusTable[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// AppError 自定义应用错误
// 设计说明：
// 1. Kind决定HTTP状态码
// 2. Message是返回给调用方的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端（防止泄露敏感信息）
type AppError struct {
	Kind    Kind   `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"` // 内部错误（不序列化）
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Status 返回HTTP状态码
func (e *AppError) Status() int {
	return HTTPStatus(e.Kind)
}

// New 创建新的AppError
func New(kind Kind, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
	}
}

// InvalidInput 创建参数错误
func InvalidInput(message string) *AppError {
	return New(KindInvalidInput, message)
}

// NotFound 创建资源不存在错误
func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

// Conflict 创建业务冲突错误
func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

// Wrap 包装系统错误（如数据库错误、网络错误）
// 用途：将底层错误转换为Unexpected，隐藏实现细节
func Wrap(err error, message string) *AppError {
	return &AppError{
		Kind:    KindUnexpected,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Kind:    KindUnexpected,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// KindOf 返回错误的Kind，非AppError一律视为Unexpected
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// GetAppError 提取AppError（如果不是AppError则包装成Unexpected错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal Server Error")
}
