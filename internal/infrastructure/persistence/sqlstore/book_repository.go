package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
)

// bookRepository 图书仓储实现
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 数据库错误统一包装为Unexpected,不向上暴露驱动细节
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	// 1. 领域实体 → GORM模型
	model := toBookModel(b)
	model.IsDeleted = false

	// 2. 插入数据库
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 3. 回填自增ID
	b.ID = model.ID
	b.IsDeleted = false
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找图书(不过滤is_deleted)
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).Where("id = ?", id).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// FindActiveByTitle 查找未删除的同名图书
func (r *bookRepository) FindActiveByTitle(ctx context.Context, title string) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).
		Where("title = ? AND is_deleted = ?", title, false).
		Order("id ASC").
		First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	return toBookEntity(&model), nil
}

// Update 更新图书的五个可编辑字段
// UPDATE books SET ... WHERE id = ? AND is_deleted = FALSE
// 使用map更新,零值字段也会写入
func (r *bookRepository) Update(ctx context.Context, b *book.Book) (bool, error) {
	now := time.Now()
	result := getDB(ctx, r.db).
		Model(&BookModel{}).
		Where("id = ? AND is_deleted = ?", b.ID, false).
		Updates(map[string]interface{}{
			"title":       b.Title,
			"author":      b.Author,
			"description": b.Description,
			"price":       b.Price,
			"stock":       b.Stock,
			"updated_at":  now,
		})

	if result.Error != nil {
		return false, apperrors.Wrap(result.Error, "更新图书失败")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	b.UpdatedAt = now
	return true, nil
}

// SoftDelete 软删除图书
// UPDATE books SET is_deleted = TRUE, updated_at = ? WHERE id = ?
func (r *bookRepository) SoftDelete(ctx context.Context, id uint) error {
	err := getDB(ctx, r.db).
		Model(&BookModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"updated_at": time.Now(),
		}).Error

	if err != nil {
		return apperrors.Wrap(err, "删除图书失败")
	}
	return nil
}

// 列表查询语句
// 销量使用关联子查询:没有销售记录的图书SUM为NULL,COALESCE为0
const (
	listSelect = `SELECT b.id, b.title, b.author, b.price, b.stock,
	COALESCE((SELECT SUM(s.quantity) FROM sales s WHERE s.book_id = b.id), 0) AS sales
FROM books b`
	countSelect = `SELECT COUNT(*) FROM books b`
	baseFilter  = ` WHERE b.is_deleted = ?`
	listOrder   = ` ORDER BY b.id ASC LIMIT ? OFFSET ?`
)

// List 分页查询图书列表
// 1. 列表与计数是两条独立语句,使用相同的过滤条件
// 2. 按id升序,分页结果稳定
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Summary, int64, error) {
	db := getDB(ctx, r.db)

	where := baseFilter
	args := []interface{}{false}
	if params.HasSearch() {
		pattern := containsPattern(params.Search)
		where += searchFilter(db.Dialector.Name())
		args = append(args, pattern, pattern)
	}

	// 查询当前页
	var rows []summaryRow
	listArgs := append(append([]interface{}{}, args...), params.PageSize, params.Offset())
	if err := db.Raw(listSelect+where+listOrder, listArgs...).Scan(&rows).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	// 查询总数
	var total int64
	if err := db.Raw(countSelect+where, args...).Scan(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	list := make([]*book.Summary, len(rows))
	for i := range rows {
		list[i] = &book.Summary{
			ID:     rows[i].ID,
			Title:  rows[i].Title,
			Author: rows[i].Author,
			Price:  rows[i].Price,
			Stock:  rows[i].Stock,
			Sales:  rows[i].Sales,
		}
	}

	return list, total, nil
}

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:          b.ID,
		Title:       b.Title,
		Author:      b.Author,
		Description: b.Description,
		Price:       b.Price,
		Stock:       b.Stock,
		IsDeleted:   b.IsDeleted,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(m *BookModel) *book.Book {
	return &book.Book{
		ID:          m.ID,
		Title:       m.Title,
		Author:      m.Author,
		Description: m.Description,
		Price:       m.Price,
		Stock:       m.Stock,
		IsDeleted:   m.IsDeleted,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
