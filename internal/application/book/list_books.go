package book

import (
	"context"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/pkg/metrics"
	"github.com/xiebiao/book-inventory/pkg/tracing"
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 支持分页和搜索(标题或作者,不区分大小写)
// 2. 列表项不返回description,附带累计销量
// 3. 只返回未删除的图书,按id升序
type ListBooksUseCase struct {
	bookService book.Service
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
	}
}

// ListBooksRequest 列表查询请求DTO
// 字段保留查询字符串的原始值,由用例解析
type ListBooksRequest struct {
	Page     string // 页码,为空时默认1
	PageSize string // 每页数量,为空时默认10
	Search   string // 搜索关键词
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	Items    []*book.Summary
	Page     int
	PageSize int
	Total    int64
}

// Execute 执行列表查询用例
// 1. 解析分页参数(非正整数返回参数错误)
// 2. 调用领域服务查询当前页和总数
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (resp *ListBooksResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "ListBooks")
	defer func() { finishSpan(span, err) }()

	// 1. 参数解析
	page, err := parsePositiveInt(req.Page, book.DefaultPage, book.ErrInvalidPage)
	if err != nil {
		return nil, err
	}
	pageSize, err := parsePositiveInt(req.PageSize, book.DefaultPageSize, book.ErrInvalidPageSize)
	if err != nil {
		return nil, err
	}
	params, err := book.NewListParams(page, pageSize, req.Search)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("books.page", params.Page),
		attribute.Int("books.page_size", params.PageSize),
		attribute.Bool("books.search", params.HasSearch()),
	)

	// 2. 查询
	start := time.Now()
	items, total, err := uc.bookService.ListBooks(ctx, params)
	metrics.ObserveHistogram(metrics.BookListDuration, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int64("books.total", total))

	return &ListBooksResponse{
		Items:    items,
		Page:     params.Page,
		PageSize: params.PageSize,
		Total:    total,
	}, nil
}

// parsePositiveInt 解析正整数参数
// 空字符串返回默认值;非整数或小于1返回invalid
func parsePositiveInt(raw string, def int, invalid error) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, invalid
	}
	return n, nil
}
