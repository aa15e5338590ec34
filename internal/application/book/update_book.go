package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/pkg/tracing"
)

// UpdateBookUseCase 更新图书用例
type UpdateBookUseCase struct {
	bookService book.Service
}

// NewUpdateBookUseCase 创建更新图书用例
func NewUpdateBookUseCase(bookService book.Service) *UpdateBookUseCase {
	return &UpdateBookUseCase{
		bookService: bookService,
	}
}

// UpdateBookRequest 更新图书请求DTO
// 五个字段都必须提交(整体替换)
type UpdateBookRequest struct {
	ID          uint
	Title       string
	Author      string
	Description string
	Price       *decimal.Decimal
	Stock       *int
}

// Execute 执行更新图书用例
// 注意:已删除的图书更新同样返回成功,但数据不会被修改
func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "UpdateBook")
	span.SetAttributes(attribute.Int64("book.id", int64(req.ID)))
	defer func() {
		recordMutation(actionUpdate, err)
		finishSpan(span, err)
	}()

	return uc.bookService.UpdateBook(ctx, req.ID, book.Fields{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
}
