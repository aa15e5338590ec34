package sqlstore

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型,包含GORM tag;domain/book/entity.go是领域实体,不依赖GORM
// 2. 价格使用decimal(10,2)存储
// 3. 软删除使用显式的is_deleted列(不使用gorm.DeletedAt,按ID查询时需要能查到已删除的图书)
// 4. title不加唯一索引:已删除的图书可以与新图书同名
type BookModel struct {
	ID          uint            `gorm:"primaryKey"`
	Title       string          `gorm:"index;size:255;not null;comment:书名"`
	Author      string          `gorm:"size:255;not null;comment:作者"`
	Description string          `gorm:"type:text;comment:图书描述"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:价格"`
	Stock       int             `gorm:"not null;comment:库存数量"`
	IsDeleted   bool            `gorm:"index;not null;comment:软删除标记"`
	CreatedAt   time.Time       `gorm:"comment:创建时间"`
	UpdatedAt   time.Time       `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// SaleModel GORM销售记录模型(由外部系统写入,本服务只读)
type SaleModel struct {
	ID       uint      `gorm:"primaryKey"`
	BookID   uint      `gorm:"index;not null;comment:图书ID"`
	Quantity int       `gorm:"not null;comment:销售数量"`
	SaleDate time.Time `gorm:"not null;comment:销售时间"`
}

// TableName 指定表名
func (SaleModel) TableName() string {
	return "sales"
}

// summaryRow 列表查询结果行
type summaryRow struct {
	ID     uint
	Title  string
	Author string
	Price  decimal.Decimal
	Stock  int
	Sales  int64
}
