package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusBadRequest},
		{KindUnexpected, http.StatusInternalServerError},
		{Kind(99), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.kind.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.kind))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		notFound := NotFound("Book not found")
		wrapped := fmt.Errorf("lookup: %w", notFound)

		got := GetAppError(wrapped)
		assert.Same(t, notFound, got)
		assert.Equal(t, http.StatusNotFound, got.Status())
	})

	t.Run("普通错误包装为Unexpected", func(t *testing.T) {
		cause := errors.New("connection refused")

		got := GetAppError(cause)
		assert.Equal(t, KindUnexpected, got.Kind)
		assert.ErrorIs(t, got, cause)
		assert.NotContains(t, got.Message, "connection refused")
	})
}

func TestWrap(t *testing.T) {
	cause := errors.New("driver: bad connection")
	err := Wrap(cause, "查询图书失败")

	assert.Equal(t, KindUnexpected, KindOf(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "driver: bad connection")
	assert.Equal(t, KindConflict, KindOf(Conflict("dup")))
	assert.Equal(t, KindUnexpected, KindOf(cause))
}
