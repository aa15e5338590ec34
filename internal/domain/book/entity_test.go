package book

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func stock(n int) *int {
	return &n
}

func validFields() Fields {
	return Fields{
		Title:       "Dune",
		Author:      "Frank Herbert",
		Description: "Sci-fi",
		Price:       price("9.99"),
		Stock:       stock(5),
	}
}

func TestFields_Normalize(t *testing.T) {
	f := Fields{
		Title:  "  Dune ",
		Author: "\tFrank Herbert\n",
		Price:  price("9.999"),
		Stock:  stock(1),
	}.Normalize()

	assert.Equal(t, "Dune", f.Title)
	assert.Equal(t, "Frank Herbert", f.Author)
	assert.Equal(t, "10", f.Price.String())
}

func TestFields_ValidateForCreate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *Fields)
		want   error
	}{
		{"合法", func(f *Fields) {}, nil},
		{"描述可选", func(f *Fields) { f.Description = "" }, nil},
		{"价格和库存可以为0", func(f *Fields) { f.Price = price("0"); f.Stock = stock(0) }, nil},
		{"缺少书名", func(f *Fields) { f.Title = "" }, ErrMissingFields},
		{"缺少作者", func(f *Fields) { f.Author = "" }, ErrMissingFields},
		{"缺少价格", func(f *Fields) { f.Price = nil }, ErrMissingFields},
		{"缺少库存", func(f *Fields) { f.Stock = nil }, ErrMissingFields},
		{"负价格", func(f *Fields) { f.Price = price("-1") }, ErrInvalidPrice},
		{"负库存", func(f *Fields) { f.Stock = stock(-1) }, ErrInvalidStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFields()
			tc.mutate(&f)
			assert.Equal(t, tc.want, f.ValidateForCreate())
		})
	}
}

func TestFields_ValidateForUpdate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(f *Fields)
		want   error
	}{
		{"合法", func(f *Fields) {}, nil},
		{"空描述", func(f *Fields) { f.Description = "" }, ErrInvalidData},
		{"价格为0", func(f *Fields) { f.Price = price("0") }, ErrInvalidData},
		{"库存为0", func(f *Fields) { f.Stock = stock(0) }, ErrInvalidData},
		{"缺少价格", func(f *Fields) { f.Price = nil }, ErrInvalidData},
		{"负价格", func(f *Fields) { f.Price = price("-2.5") }, ErrInvalidPrice},
		{"负库存", func(f *Fields) { f.Stock = stock(-3) }, ErrInvalidStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validFields()
			tc.mutate(&f)
			assert.Equal(t, tc.want, f.ValidateForUpdate())
		})
	}
}

func TestBook_Replace(t *testing.T) {
	b := NewBook(validFields())
	before := b.UpdatedAt

	b.Replace(Fields{
		Title:       "Dune Messiah",
		Author:      "Frank Herbert",
		Description: "Sequel",
		Price:       price("12.50"),
		Stock:       stock(7),
	})

	assert.Equal(t, "Dune Messiah", b.Title)
	assert.Equal(t, "Sequel", b.Description)
	assert.True(t, b.Price.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, 7, b.Stock)
	assert.False(t, b.UpdatedAt.Before(before))
}

func TestBook_MarkDeleted(t *testing.T) {
	b := NewBook(validFields())
	assert.False(t, b.IsDeleted)

	b.MarkDeleted()
	assert.True(t, b.IsDeleted)

	// 重复删除
	b.MarkDeleted()
	assert.True(t, b.IsDeleted)
}

func TestNewListParams(t *testing.T) {
	p, err := NewListParams(3, 20, "  dune ")
	assert.NoError(t, err)
	assert.Equal(t, 40, p.Offset())
	assert.Equal(t, "dune", p.Search)
	assert.True(t, p.HasSearch())

	p, err = NewListParams(1, 10, "   ")
	assert.NoError(t, err)
	assert.Equal(t, 0, p.Offset())
	assert.False(t, p.HasSearch())

	// 偏移量溢出时取最大值
	p, err = NewListParams(math.MaxInt, 2, "")
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt, p.Offset())

	p, err = NewListParams(math.MaxInt/10+1, 10, "")
	assert.NoError(t, err)
	assert.Equal(t, math.MaxInt/10*10, p.Offset())

	_, err = NewListParams(0, 10, "")
	assert.Equal(t, ErrInvalidPage, err)

	_, err = NewListParams(1, -5, "")
	assert.Equal(t, ErrInvalidPageSize, err)
}
