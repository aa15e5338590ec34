package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/book-inventory/internal/domain/book"
	"github.com/xiebiao/book-inventory/internal/infrastructure/config"
	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
)

// newTestDB 创建内存SQLite数据库(已迁移表结构)
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		Server: config.ServerConfig{Mode: "test"},
		Database: config.DatabaseConfig{
			Driver:      config.DriverSQLite,
			Path:        ":memory:",
			AutoMigrate: true,
		},
	}
	db, cleanup, err := NewDB(cfg)
	require.NoError(t, err)
	t.Cleanup(cleanup)
	return db
}

func newBook(title, author, price string, stock int) *book.Book {
	p := decimal.RequireFromString(price)
	return book.NewBook(book.Fields{
		Title:       title,
		Author:      author,
		Description: title + " description",
		Price:       &p,
		Stock:       &stock,
	})
}

func insertSale(t *testing.T, db *gorm.DB, bookID uint, qty int, at time.Time) {
	t.Helper()
	require.NoError(t, db.Create(&SaleModel{BookID: bookID, Quantity: qty, SaleDate: at}).Error)
}

func TestBookRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := newBook("Dune", "Frank Herbert", "9.99", 5)
	require.NoError(t, repo.Create(ctx, b))
	assert.NotZero(t, b.ID)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.Equal(t, "Frank Herbert", got.Author)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.99")), got.Price.String())
	assert.Equal(t, 5, got.Stock)
	assert.False(t, got.IsDeleted)
}

func TestBookRepository_FindByID_NotFound(t *testing.T) {
	repo := NewBookRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), 9999)
	assert.Equal(t, book.ErrBookNotFound, err)
}

func TestBookRepository_FindActiveByTitle(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := newBook("Dune", "Frank Herbert", "9.99", 5)
	require.NoError(t, repo.Create(ctx, b))

	got, err := repo.FindActiveByTitle(ctx, "Dune")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	// 删除后不再参与书名查重
	require.NoError(t, repo.SoftDelete(ctx, b.ID))
	_, err = repo.FindActiveByTitle(ctx, "Dune")
	assert.Equal(t, book.ErrBookNotFound, err)
}

func TestBookRepository_Update(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := newBook("Dune", "Frank Herbert", "9.99", 5)
	require.NoError(t, repo.Create(ctx, b))

	b.Title = "Dune Messiah"
	b.Price = decimal.RequireFromString("12.50")
	b.Stock = 0
	updated, err := repo.Update(ctx, b)
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", got.Title)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 0, got.Stock)
}

func TestBookRepository_Update_DeletedRowUntouched(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := newBook("Dune", "Frank Herbert", "9.99", 5)
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SoftDelete(ctx, b.ID))

	b.Title = "Changed"
	updated, err := repo.Update(ctx, b)
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)
	assert.True(t, got.IsDeleted)
}

func TestBookRepository_SoftDelete_Idempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	b := newBook("Dune", "Frank Herbert", "9.99", 5)
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.SoftDelete(ctx, b.ID))
	require.NoError(t, repo.SoftDelete(ctx, b.ID))

	// 已删除的图书仍可按ID查到
	got, err := repo.FindByID(ctx, b.ID)
	require.NoError(t, err)
	assert.True(t, got.IsDeleted)
}

func TestBookRepository_List_PaginationAndSales(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	var ids []uint
	for i := 1; i <= 25; i++ {
		b := newBook(fmt.Sprintf("Book %02d", i), "Author", "10.00", i)
		require.NoError(t, repo.Create(ctx, b))
		ids = append(ids, b.ID)
	}
	now := time.Now()
	insertSale(t, db, ids[0], 2, now)
	insertSale(t, db, ids[0], 3, now)

	params, err := book.NewListParams(1, 10, "")
	require.NoError(t, err)
	list, total, err := repo.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, list, 10)
	assert.Equal(t, ids[0], list[0].ID)
	assert.Equal(t, int64(5), list[0].Sales)
	assert.Equal(t, int64(0), list[1].Sales)

	params, err = book.NewListParams(3, 10, "")
	require.NoError(t, err)
	list, total, err = repo.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	require.Len(t, list, 5)
	assert.Equal(t, "Book 21", list[0].Title)

	// 超出范围的页码:空列表,总数不变
	params, err = book.NewListParams(10, 10, "")
	require.NoError(t, err)
	list, total, err = repo.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(25), total)
	assert.Empty(t, list)
}

func TestBookRepository_List_ExcludesDeleted(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	a := newBook("A", "X", "1.00", 1)
	b := newBook("B", "X", "1.00", 1)
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.SoftDelete(ctx, a.ID))

	params, _ := book.NewListParams(1, 10, "")
	list, total, err := repo.List(ctx, params)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Title)
}

func TestBookRepository_List_Search(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newBook("The Go Programming Language", "Donovan", "30.00", 3)))
	require.NoError(t, repo.Create(ctx, newBook("Dune", "Frank Herbert", "9.99", 5)))
	require.NoError(t, repo.Create(ctx, newBook("100% Pure", "Anon", "5.00", 1)))
	require.NoError(t, repo.Create(ctx, newBook("1000 Pure", "Anon", "5.00", 1)))
	require.NoError(t, repo.Create(ctx, newBook("Émile", "Jean-Jacques Rousseau", "7.00", 2)))

	cases := []struct {
		search string
		want   []string
	}{
		{"go", []string{"The Go Programming Language"}},
		{"HERBERT", []string{"Dune"}}, // 匹配作者,不区分大小写
		{"%", []string{"100% Pure"}},  // %按字面匹配
		{"0_", nil},                   // _按字面匹配
		{"anon", []string{"100% Pure", "1000 Pure"}},
		{"émile", []string{"Émile"}}, // 非ASCII字符同样不区分大小写
		{"ÉMILE", []string{"Émile"}},
		{"rousseau", []string{"Émile"}},
	}
	for _, tc := range cases {
		t.Run(tc.search, func(t *testing.T) {
			params, err := book.NewListParams(1, 10, tc.search)
			require.NoError(t, err)

			list, total, err := repo.List(ctx, params)
			require.NoError(t, err)
			assert.Equal(t, int64(len(tc.want)), total)

			var titles []string
			for _, s := range list {
				titles = append(titles, s.Title)
			}
			assert.Equal(t, tc.want, titles)
		})
	}
}

func TestBookRepository_DBError(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	_, err = repo.FindByID(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindUnexpected, apperrors.KindOf(err))
	assert.False(t, errors.Is(err, book.ErrBookNotFound))
}

func TestSaleRepository_ListByBookID(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	sales := NewSaleRepository(db)
	ctx := context.Background()

	b := newBook("Dune", "Frank Herbert", "9.99", 5)
	require.NoError(t, repo.Create(ctx, b))
	other := newBook("Emma", "Jane Austen", "4.50", 2)
	require.NoError(t, repo.Create(ctx, other))

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	insertSale(t, db, b.ID, 3, base.Add(time.Hour))
	insertSale(t, db, b.ID, 1, base)
	insertSale(t, db, other.ID, 7, base)

	got, err := sales.ListByBookID(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Quantity)
	assert.Equal(t, 3, got[1].Quantity)
	assert.Equal(t, b.ID, got[0].BookID)

	none, err := sales.ListByBookID(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestTxManager_Rollback(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	tx := NewTxManager(db)
	ctx := context.Background()

	boom := errors.New("boom")
	err := tx.Transaction(ctx, func(txCtx context.Context) error {
		if err := repo.Create(txCtx, newBook("Dune", "Frank Herbert", "9.99", 5)); err != nil {
			return err
		}
		return boom
	})
	assert.Equal(t, boom, err)

	_, err = repo.FindActiveByTitle(ctx, "Dune")
	assert.Equal(t, book.ErrBookNotFound, err)
}

func TestBookRepository_List_HugePage(t *testing.T) {
	db := newTestDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newBook("Dune", "Frank Herbert", "9.99", 5)))

	// (page-1)*pageSize溢出时返回空页,总数不变
	params, err := book.NewListParams(math.MaxInt, 2, "")
	require.NoError(t, err)
	list, total, err := repo.List(ctx, params)
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, int64(1), total)
}

func TestSearchFilter(t *testing.T) {
	assert.Contains(t, searchFilter("postgres"), "b.title ILIKE ? ESCAPE '!'")
	assert.Contains(t, searchFilter("sqlite"), "unicode_lower(b.author) LIKE ? ESCAPE '!'")
	assert.Contains(t, searchFilter("mysql"), "LOWER(b.title) LIKE ? ESCAPE '!'")
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%dune%", containsPattern("DUNE"))
	assert.Equal(t, "%100!%%", containsPattern("100%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%!!%", containsPattern("!"))
	assert.Equal(t, "%émile%", containsPattern("ÉMILE"))
}
