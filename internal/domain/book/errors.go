package book

import (
	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.NotFound("Book not found")

	// ErrTitleDuplicate 书名已存在(未删除的图书中)
	ErrTitleDuplicate = apperrors.Conflict("A book with the same title already exists")

	// ErrMissingFields 创建时缺少必填字段
	ErrMissingFields = apperrors.InvalidInput("Title, author, price and stock are required")

	// ErrInvalidData 更新时字段缺失或为空
	ErrInvalidData = apperrors.InvalidInput("Invalid Data")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.InvalidInput("Price must not be negative")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.InvalidInput("Stock must not be negative")

	// ErrInvalidPage 无效的页码
	ErrInvalidPage = apperrors.InvalidInput("Invalid page parameter. Page must be a positive integer.")

	// ErrInvalidPageSize 无效的每页数量
	ErrInvalidPageSize = apperrors.InvalidInput("Invalid pageSize parameter. PageSize must be a positive integer.")
)
