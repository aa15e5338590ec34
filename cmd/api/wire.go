//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// 运行 `wire gen ./cmd/api` 重新生成wire_gen.go
//
// 依赖链:
// *gin.Engine → *handler.BookHandler → *appbook.XxxUseCase → book.Service
// → book.Repository / book.SaleRepository / book.Transactor / book.EventPublisher → *gorm.DB → *config.Config

package main

import (
	"github.com/google/wire"

	appbook "github.com/xiebiao/book-inventory/internal/application/book"
	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/internal/infrastructure/config"
	"github.com/xiebiao/book-inventory/internal/infrastructure/messaging"
	"github.com/xiebiao/book-inventory/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/book-inventory/internal/interface/http/handler"
	"github.com/xiebiao/book-inventory/internal/interface/http/router"
)

// infrastructureSet 基础设施层依赖
// 包含:日志、Tracer、数据库连接、事件发布者
var infrastructureSet = wire.NewSet(
	provideLogger,
	provideTracer,
	sqlstore.NewDB,
	messaging.NewFromConfig,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	sqlstore.NewBookRepository,
	sqlstore.NewSaleRepository,
	sqlstore.NewTxManager,
	wire.Bind(new(book.Transactor), new(*sqlstore.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	book.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appbook.NewListBooksUseCase,
	appbook.NewCreateBookUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewUpdateBookUseCase,
	appbook.NewDeleteBookUseCase,
)

// handlerSet HTTP层依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	router.NewRouter,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序释放资源(Tracer、事件发布者、数据库连接池、日志文件)
func InitializeApp(cfg *config.Config) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
