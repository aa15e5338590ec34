package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/pkg/tracing"
)

// CreateBookUseCase 添加图书用例
// 业务规则校验(必填字段、非负、书名唯一)由领域服务负责,应用层只负责流程编排
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建添加图书用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 添加图书请求DTO
type CreateBookRequest struct {
	Title       string
	Author      string
	Description string
	Price       *decimal.Decimal // nil表示未提交
	Stock       *int             // nil表示未提交
}

// CreateBookResponse 添加图书响应DTO
type CreateBookResponse struct {
	ID uint
}

// Execute 执行添加图书用例
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (resp *CreateBookResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateBook")
	defer func() {
		recordMutation(actionCreate, err)
		finishSpan(span, err)
	}()

	b, err := uc.bookService.CreateBook(ctx, book.Fields{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
	})
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int64("book.id", int64(b.ID)))
	return &CreateBookResponse{ID: b.ID}, nil
}
