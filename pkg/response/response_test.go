package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
)

func newTestContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/books/1", nil)
	return c, w
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total    int64
		pageSize int
		want     int
	}{
		{0, 10, 0},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 1, 25},
		{99, 7, 15},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TotalPages(tc.total, tc.pageSize), "total=%d pageSize=%d", tc.total, tc.pageSize)
	}
}

func TestNewPageMeta(t *testing.T) {
	meta := NewPageMeta(2, 10, 21)
	assert.Equal(t, PageMeta{CurrentPage: 2, PageSize: 10, TotalPages: 3, TotalCount: 21}, meta)
}

func TestError(t *testing.T) {
	t.Run("NotFound映射为404", func(t *testing.T) {
		c, w := newTestContext()
		Error(c, apperrors.NotFound("Book not found"), "Failed to fetch book")

		assert.Equal(t, http.StatusNotFound, w.Code)
		var body ErrorBody
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Book not found", body.Error)
	})

	t.Run("Conflict映射为400", func(t *testing.T) {
		c, w := newTestContext()
		Error(c, apperrors.Conflict("duplicate"), "Failed to add book")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("未知错误不泄露细节", func(t *testing.T) {
		c, w := newTestContext()
		Error(c, errors.New("dial tcp 10.0.0.1:3306: connection refused"), "Failed to fetch book")

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "10.0.0.1")
		assert.JSONEq(t, `{"error":"Failed to fetch book"}`, w.Body.String())
	})
}

func TestSuccessWithPage(t *testing.T) {
	c, w := newTestContext()
	SuccessWithPage(c, []string{}, NewPageMeta(1, 10, 0))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"meta":{"currentPage":1,"pageSize":10,"totalPages":0,"totalCount":0}}`, w.Body.String())
}
