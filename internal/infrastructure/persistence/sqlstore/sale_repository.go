package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
)

// saleRepository 销售记录仓储实现(只读)
type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository 创建销售记录仓储
func NewSaleRepository(db *gorm.DB) book.SaleRepository {
	return &saleRepository{db: db}
}

// ListByBookID 查询图书的全部销售记录,按销售时间升序
func (r *saleRepository) ListByBookID(ctx context.Context, bookID uint) ([]book.Sale, error) {
	var models []SaleModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("sale_date ASC, id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询销售记录失败")
	}

	sales := make([]book.Sale, len(models))
	for i, m := range models {
		sales[i] = book.Sale{
			ID:       m.ID,
			BookID:   m.BookID,
			Quantity: m.Quantity,
			SaleDate: m.SaleDate,
		}
	}
	return sales, nil
}
