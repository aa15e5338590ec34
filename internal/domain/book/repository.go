package book

import (
	"context"
	"math"
	"strings"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于Mock测试,不依赖具体数据库实现
// 3. 每个方法对应一条参数化SQL语句,原子性由数据库保证
type Repository interface {
	// Create 创建图书(IsDeleted=false),回填ID和时间戳
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不过滤软删除标记
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindActiveByTitle 查找未删除且书名完全一致(区分大小写)的图书
	FindActiveByTitle(ctx context.Context, title string) (*Book, error)

	// Update 整体替换可编辑字段并刷新updated_at
	// 语句带is_deleted=FALSE条件:已删除的图书不会被修改,此时返回(false, nil)
	Update(ctx context.Context, book *Book) (bool, error)

	// SoftDelete 设置is_deleted=TRUE并刷新updated_at,不检查当前标记
	SoftDelete(ctx context.Context, id uint) error

	// List 分页查询未删除的图书(附带累计销量)及满足同一条件的总数
	List(ctx context.Context, params ListParams) ([]*Summary, int64, error)
}

// SaleRepository 销售记录仓储接口(只读)
type SaleRepository interface {
	// ListByBookID 查询图书的全部销售记录(不分页)
	ListByBookID(ctx context.Context, bookID uint) ([]Sale, error)
}

// Transactor 事务执行器
// fn内通过ctx调用的Repository方法在同一事务中执行
type Transactor interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// 分页默认值
const (
	DefaultPage     = 1
	DefaultPageSize = 10
)

// ListParams 列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Search   string // 搜索关键词(已去除首尾空白,匹配标题或作者,不区分大小写)
}

// NewListParams 校验并构造列表查询参数
// page<1返回ErrInvalidPage,pageSize<1返回ErrInvalidPageSize
func NewListParams(page, pageSize int, search string) (ListParams, error) {
	if page < 1 {
		return ListParams{}, ErrInvalidPage
	}
	if pageSize < 1 {
		return ListParams{}, ErrInvalidPageSize
	}
	return ListParams{
		Page:     page,
		PageSize: pageSize,
		Search:   strings.TrimSpace(search),
	}, nil
}

// Offset 计算偏移量 (page-1)*pageSize
// 乘积溢出时取math.MaxInt,结果为空页
func (p ListParams) Offset() int {
	if p.PageSize > 0 && p.Page-1 > math.MaxInt/p.PageSize {
		return math.MaxInt
	}
	return (p.Page - 1) * p.PageSize
}

// HasSearch 是否带搜索条件
func (p ListParams) HasSearch() bool {
	return p.Search != ""
}
