//go:build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 测试针对运行中的服务(默认http://localhost:8080),通过BOOKSTORE_TEST_BASE_URL覆盖
//
// 运行:go test -tags=integration ./test/integration/...

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BaseURL API基础URL
var BaseURL = baseURL()

func baseURL() string {
	if u := os.Getenv("BOOKSTORE_TEST_BASE_URL"); u != "" {
		return u + "/api/books"
	}
	return "http://localhost:8080/api/books"
}

// Result HTTP响应(状态码+原始响应体)
type Result struct {
	Status int
	Header http.Header
	Body   []byte
}

// Decode 解析响应体
func (r *Result) Decode(t *testing.T, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.Body, v), "解析JSON响应失败: %s", string(r.Body))
}

// MessageData 操作结果
type MessageData struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// BookItem 图书列表项
type BookItem struct {
	ID     uint    `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
	Sales  int64   `json:"sales"`
}

// BookListData 图书列表响应
type BookListData struct {
	Data []BookItem `json:"data"`
	Meta struct {
		CurrentPage int   `json:"currentPage"`
		PageSize    int   `json:"pageSize"`
		TotalPages  int   `json:"totalPages"`
		TotalCount  int64 `json:"totalCount"`
	} `json:"meta"`
}

// BookDetailData 图书详情响应
type BookDetailData struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	IsDeleted   bool    `json:"is_deleted"`
	SalesData   []struct {
		Quantity int `json:"quantity"`
	} `json:"salesData"`
}

// Do 发送请求,data不为nil时以JSON编码作为请求体
func Do(t *testing.T, method, rawURL string, data interface{}) *Result {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, rawURL, body)
	require.NoError(t, err, "创建HTTP请求失败")
	if data != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	return &Result{Status: resp.StatusCode, Header: resp.Header, Body: b}
}

// UniqueTitle 生成唯一的测试书名
// 使用纳秒时间戳,避免重复运行时书名冲突
func UniqueTitle(prefix string) string {
	return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
}

// CreateTestBook 添加图书并通过搜索返回其ID
func CreateTestBook(t *testing.T, title string, stock int) uint {
	t.Helper()

	resp := Do(t, http.MethodPost, BaseURL, map[string]interface{}{
		"title":       title,
		"author":      "Integration",
		"description": "集成测试用图书",
		"price":       19.9,
		"stock":       stock,
	})
	require.Equal(t, http.StatusCreated, resp.Status, "添加图书失败: %s", string(resp.Body))

	list := SearchBooks(t, title)
	require.Len(t, list.Data, 1, "应该能搜索到新添加的图书")
	return list.Data[0].ID
}

// SearchBooks 按关键词搜索图书(第一页)
func SearchBooks(t *testing.T, term string) BookListData {
	t.Helper()

	resp := Do(t, http.MethodGet, BaseURL+"?search="+url.QueryEscape(term), nil)
	require.Equal(t, http.StatusOK, resp.Status, string(resp.Body))

	var list BookListData
	resp.Decode(t, &list)
	return list
}

// BookURL 单本图书的URL
func BookURL(id uint) string {
	return fmt.Sprintf("%s/%d", BaseURL, id)
}
