package book

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal.Decimal(避免浮点数精度问题),保留两位小数
// 2. 未删除的图书之间书名唯一
// 3. 删除是软删除:IsDeleted置为true,记录保留
type Book struct {
	ID          uint
	Title       string          // 书名
	Author      string          // 作者
	Description string          // 图书描述(可选)
	Price       decimal.Decimal // 价格,非负
	Stock       int             // 库存数量,非负
	IsDeleted   bool            // 软删除标记
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Sale 销售记录(只读)
type Sale struct {
	ID       uint
	BookID   uint
	Quantity int
	SaleDate time.Time
}

// Summary 列表项:图书 + 累计销量
type Summary struct {
	ID     uint
	Title  string
	Author string
	Price  decimal.Decimal
	Stock  int
	Sales  int64 // 该图书所有销售记录的数量之和,没有销售记录时为0
}

// Detail 图书详情:图书 + 全部销售记录(不分页、不汇总)
type Detail struct {
	Book  *Book
	Sales []Sale
}

// Fields 创建/更新时提交的字段
// Price和Stock使用指针区分"未提交"和"零值"
type Fields struct {
	Title       string
	Author      string
	Description string
	Price       *decimal.Decimal
	Stock       *int
}

// Normalize 去除字符串字段首尾空白,价格保留两位小数
func (f Fields) Normalize() Fields {
	f.Title = strings.TrimSpace(f.Title)
	f.Author = strings.TrimSpace(f.Author)
	f.Description = strings.TrimSpace(f.Description)
	if f.Price != nil {
		p := f.Price.Round(2)
		f.Price = &p
	}
	return f
}

// ValidateForCreate 创建校验
// 业务规则:书名、作者、价格、库存必填,描述可选;价格和库存不能为负数
func (f Fields) ValidateForCreate() error {
	if f.Title == "" || f.Author == "" || f.Price == nil || f.Stock == nil {
		return ErrMissingFields
	}
	return f.validateRange()
}

// ValidateForUpdate 更新校验
// 业务规则:五个字段都必须提交且为"真值",空字符串、价格0、库存0都视为无效
func (f Fields) ValidateForUpdate() error {
	if f.Title == "" || f.Author == "" || f.Description == "" ||
		f.Price == nil || f.Price.IsZero() ||
		f.Stock == nil || *f.Stock == 0 {
		return ErrInvalidData
	}
	return f.validateRange()
}

func (f Fields) validateRange() error {
	if f.Price.IsNegative() {
		return ErrInvalidPrice
	}
	if *f.Stock < 0 {
		return ErrInvalidStock
	}
	return nil
}

// NewBook 创建新图书(工厂方法)
// 调用方需先通过ValidateForCreate
func NewBook(f Fields) *Book {
	now := time.Now()
	return &Book{
		Title:       f.Title,
		Author:      f.Author,
		Description: f.Description,
		Price:       *f.Price,
		Stock:       *f.Stock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Replace 整体替换五个可编辑字段(领域行为)
// 调用方需先通过ValidateForUpdate
func (b *Book) Replace(f Fields) {
	b.Title = f.Title
	b.Author = f.Author
	b.Description = f.Description
	b.Price = *f.Price
	b.Stock = *f.Stock
	b.UpdatedAt = time.Now()
}

// MarkDeleted 标记为已删除(领域行为)
// 对已删除的图书重复调用只会刷新UpdatedAt
func (b *Book) MarkDeleted() {
	b.IsDeleted = true
	b.UpdatedAt = time.Now()
}
