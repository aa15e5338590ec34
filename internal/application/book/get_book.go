package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/pkg/tracing"
)

// GetBookUseCase 图书详情用例
// 返回图书全部字段(包括is_deleted)及其全部销售记录
type GetBookUseCase struct {
	bookService book.Service
}

// NewGetBookUseCase 创建图书详情用例
func NewGetBookUseCase(bookService book.Service) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行图书详情用例
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (detail *book.Detail, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "GetBook")
	span.SetAttributes(attribute.Int64("book.id", int64(id)))
	defer func() { finishSpan(span, err) }()

	detail, err = uc.bookService.GetBookDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("book.sales_count", len(detail.Sales)))
	return detail, nil
}
