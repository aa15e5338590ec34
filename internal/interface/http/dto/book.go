package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/pkg/response"
)

// BookURI 路径参数
// id必须是正整数
type BookURI struct {
	ID uint `uri:"id" binding:"required,min=1"`
}

// CreateBookRequest HTTP添加图书请求
// 价格和库存使用指针区分"未提交"和"0"
// 价格和库存可以是JSON数字或数字字符串
type CreateBookRequest struct {
	Title       string           `json:"title" binding:"max=255" example:"Dune"`
	Author      string           `json:"author" binding:"max=255" example:"Frank Herbert"`
	Description string           `json:"description" example:"Science fiction novel"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number" example:"9.99"`
	Stock       *FlexInt         `json:"stock" swaggertype:"integer" example:"5"`
}

// UpdateBookRequest HTTP更新图书请求
// 五个字段都必须提交且不能为空或0
type UpdateBookRequest struct {
	Title       string           `json:"title" binding:"max=255" example:"Dune Messiah"`
	Author      string           `json:"author" binding:"max=255" example:"Frank Herbert"`
	Description string           `json:"description" example:"Sequel"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number" example:"12.50"`
	Stock       *FlexInt         `json:"stock" swaggertype:"integer" example:"7"`
}

// BookListItem HTTP图书列表项
// 列表查询不返回description,附带累计销量
type BookListItem struct {
	ID     uint    `json:"id" example:"1"`
	Title  string  `json:"title" example:"Dune"`
	Author string  `json:"author" example:"Frank Herbert"`
	Price  float64 `json:"price" example:"9.99"`
	Stock  int     `json:"stock" example:"5"`
	Sales  int64   `json:"sales" example:"12"`
}

// ListBooksResponse HTTP图书列表响应(仅用于文档)
type ListBooksResponse struct {
	Data []BookListItem    `json:"data"`
	Meta response.PageMeta `json:"meta"`
}

// SaleResponse 销售记录
type SaleResponse struct {
	ID       uint      `json:"id" example:"1"`
	BookID   uint      `json:"book_id" example:"1"`
	Quantity int       `json:"quantity" example:"2"`
	SaleDate time.Time `json:"sale_date" example:"2024-01-15T10:30:00Z"`
}

// BookDetailResponse HTTP图书详情响应
// 包含全部字段(包括is_deleted)和全部销售记录
type BookDetailResponse struct {
	ID          uint           `json:"id" example:"1"`
	Title       string         `json:"title" example:"Dune"`
	Author      string         `json:"author" example:"Frank Herbert"`
	Description string         `json:"description" example:"Science fiction novel"`
	Price       float64        `json:"price" example:"9.99"`
	Stock       int            `json:"stock" example:"5"`
	IsDeleted   bool           `json:"is_deleted" example:"false"`
	CreatedAt   time.Time      `json:"created_at" example:"2024-01-15T10:30:00Z"`
	UpdatedAt   time.Time      `json:"updated_at" example:"2024-01-15T10:30:00Z"`
	SalesData   []SaleResponse `json:"salesData"`
}

// ToBookListItems 列表项转换
// 结果不会是nil,空列表序列化为[]
func ToBookListItems(items []*book.Summary) []BookListItem {
	list := make([]BookListItem, len(items))
	for i, s := range items {
		list[i] = BookListItem{
			ID:     s.ID,
			Title:  s.Title,
			Author: s.Author,
			Price:  s.Price.InexactFloat64(),
			Stock:  s.Stock,
			Sales:  s.Sales,
		}
	}
	return list
}

// ToBookDetailResponse 详情转换
func ToBookDetailResponse(d *book.Detail) *BookDetailResponse {
	sales := make([]SaleResponse, len(d.Sales))
	for i, s := range d.Sales {
		sales[i] = SaleResponse{
			ID:       s.ID,
			BookID:   s.BookID,
			Quantity: s.Quantity,
			SaleDate: s.SaleDate,
		}
	}

	b := d.Book
	return &BookDetailResponse{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price.InexactFloat64(),
		Stock:       b.Stock,
		IsDeleted:   b.IsDeleted,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
		SalesData:   sales,
	}
}
