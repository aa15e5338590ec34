package book

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/pkg/tracing"
)

// DeleteBookUseCase 删除图书用例(软删除)
type DeleteBookUseCase struct {
	bookService book.Service
}

// NewDeleteBookUseCase 创建删除图书用例
func NewDeleteBookUseCase(bookService book.Service) *DeleteBookUseCase {
	return &DeleteBookUseCase{
		bookService: bookService,
	}
}

// Execute 执行删除图书用例
func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) (err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "DeleteBook")
	span.SetAttributes(attribute.Int64("book.id", int64(id)))
	defer func() {
		recordMutation(actionDelete, err)
		finishSpan(span, err)
	}()

	return uc.bookService.DeleteBook(ctx, id)
}
