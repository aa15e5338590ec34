package book

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验(必填字段、非负、书名唯一)
// 2. 不依赖具体的Repository实现(依赖倒置)
// 3. 变更成功后发布事件,发布失败不影响结果
type Service interface {
	// CreateBook 添加图书
	// 业务规则:
	// - 书名、作者、价格、库存必填
	// - 价格和库存不能为负数
	// - 未删除的图书中书名不能重复
	CreateBook(ctx context.Context, fields Fields) (*Book, error)

	// GetBook 根据ID获取图书(包括已删除的图书)
	GetBook(ctx context.Context, id uint) (*Book, error)

	// GetBookDetail 获取图书及其全部销售记录
	GetBookDetail(ctx context.Context, id uint) (*Detail, error)

	// UpdateBook 整体替换图书的五个可编辑字段
	// 业务规则:五个字段都必须为非空/非零,图书必须存在
	UpdateBook(ctx context.Context, id uint, fields Fields) error

	// DeleteBook 软删除图书
	// 图书必须存在;对已删除的图书重复删除仍然成功
	DeleteBook(ctx context.Context, id uint) error

	// ListBooks 分页查询未删除的图书
	ListBooks(ctx context.Context, params ListParams) ([]*Summary, int64, error)
}

// service 领域服务实现
type service struct {
	repo      Repository
	saleRepo  SaleRepository
	tx        Transactor
	publisher EventPublisher
}

// NewService 创建图书领域服务
func NewService(repo Repository, saleRepo SaleRepository, tx Transactor, publisher EventPublisher) Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &service{
		repo:      repo,
		saleRepo:  saleRepo,
		tx:        tx,
		publisher: publisher,
	}
}

// CreateBook 添加图书
func (s *service) CreateBook(ctx context.Context, fields Fields) (*Book, error) {
	// 1. 字段校验
	fields = fields.Normalize()
	if err := fields.ValidateForCreate(); err != nil {
		return nil, err
	}

	// 2. 查重与插入在同一事务中执行
	// 注意:READ COMMITTED下两个并发请求仍可能同时通过查重
	book := NewBook(fields)
	err := s.tx.Transaction(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindActiveByTitle(txCtx, fields.Title)
		if err == nil && existing != nil {
			return ErrTitleDuplicate
		}
		if err != nil && !errors.Is(err, ErrBookNotFound) {
			return err
		}
		return s.repo.Create(txCtx, book)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, newEvent(EventCreated, book))
	return book, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id uint) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

// GetBookDetail 获取图书详情
// 先查图书再查销售记录,两次读取不在同一事务中
func (s *service) GetBookDetail(ctx context.Context, id uint) (*Detail, error) {
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	sales, err := s.saleRepo.ListByBookID(ctx, book.ID)
	if err != nil {
		return nil, err
	}
	if sales == nil {
		sales = []Sale{}
	}

	return &Detail{Book: book, Sales: sales}, nil
}

// UpdateBook 更新图书
func (s *service) UpdateBook(ctx context.Context, id uint, fields Fields) error {
	// 1. 存在性检查(不区分是否已删除),图书不存在时不校验字段
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 字段校验
	fields = fields.Normalize()
	if err := fields.ValidateForUpdate(); err != nil {
		return err
	}

	// 3. 替换字段并持久化
	book.Replace(fields)
	updated, err := s.repo.Update(ctx, book)
	if err != nil {
		return err
	}
	if !updated {
		// 图书已被删除,UPDATE命中0行,按成功处理
		zerolog.Ctx(ctx).Debug().Uint("book_id", id).Msg("update skipped for deleted book")
		return nil
	}

	s.publish(ctx, newEvent(EventUpdated, book))
	return nil
}

// DeleteBook 删除图书(软删除)
func (s *service) DeleteBook(ctx context.Context, id uint) error {
	// 1. 存在性检查
	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	// 2. 执行删除
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	book.MarkDeleted()

	s.publish(ctx, newEvent(EventDeleted, book))
	return nil
}

// ListBooks 分页查询图书列表
func (s *service) ListBooks(ctx context.Context, params ListParams) ([]*Summary, int64, error) {
	return s.repo.List(ctx, params)
}

// publish 发布事件,失败只记录日志
func (s *service) publish(ctx context.Context, event Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		zerolog.Ctx(ctx).Warn().
			Err(err).
			Str("event", string(event.Type)).
			Uint("book_id", event.BookID).
			Msg("publish book event failed")
	}
}
