package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/book-inventory/internal/application/book"
	"github.com/xiebiao/book-inventory/internal/infrastructure/config"
	"github.com/xiebiao/book-inventory/internal/interface/http/dto"
	apperrors "github.com/xiebiao/book-inventory/pkg/errors"
	"github.com/xiebiao/book-inventory/pkg/response"
)

// 每个接口的通用500提示
const (
	msgListFailed   = "Failed to fetch books"
	msgCreateFailed = "Failed to add book"
	msgGetFailed    = "Failed to fetch book"
	msgUpdateFailed = "Failed to update book"
	msgDeleteFailed = "Failed to delete book"
)

var (
	errInvalidBookID = apperrors.InvalidInput("Invalid book id")
	errInvalidBody   = apperrors.InvalidInput("Invalid request body")
)

// BookHandler 图书HTTP处理器
// Handler只负责HTTP相关的事情：解析请求、调用应用层、返回响应
type BookHandler struct {
	listBooksUseCase  *appbook.ListBooksUseCase
	createBookUseCase *appbook.CreateBookUseCase
	getBookUseCase    *appbook.GetBookUseCase
	updateBookUseCase *appbook.UpdateBookUseCase
	deleteBookUseCase *appbook.DeleteBookUseCase
	listCacheControl  string // 列表响应的Cache-Control,为空时不发送
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	cfg *config.Config,
	listBooksUseCase *appbook.ListBooksUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
) *BookHandler {
	var cacheControl string
	if maxAge := cfg.Server.ListCacheMaxAge; maxAge > 0 {
		cacheControl = fmt.Sprintf("public, max-age=%d", int(maxAge/time.Second))
	}

	return &BookHandler{
		listBooksUseCase:  listBooksUseCase,
		createBookUseCase: createBookUseCase,
		getBookUseCase:    getBookUseCase,
		updateBookUseCase: updateBookUseCase,
		deleteBookUseCase: deleteBookUseCase,
		listCacheControl:  cacheControl,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  分页查询未删除的图书,支持按标题或作者搜索(不区分大小写),附带累计销量
// @Tags         图书
// @Produce      json
// @Param        page      query  int     false  "页码(默认1)"
// @Param        pageSize  query  int     false  "每页数量(默认10)"
// @Param        search    query  string  false  "搜索关键词"
// @Success      200 {object} dto.ListBooksResponse
// @Failure      400 {object} response.ErrorBody "分页参数错误"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	result, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     c.Query("page"),
		PageSize: c.Query("pageSize"),
		Search:   c.Query("search"),
	})
	if err != nil {
		response.Error(c, err, msgListFailed)
		return
	}

	if h.listCacheControl != "" {
		c.Header("Cache-Control", h.listCacheControl)
	}
	response.SuccessWithPage(c,
		dto.ToBookListItems(result.Items),
		response.NewPageMeta(result.Page, result.PageSize, result.Total),
	)
}

// CreateBook 添加图书
// @Summary      添加图书
// @Description  书名、作者、价格、库存必填;未删除的图书中书名不能重复
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateBookRequest true "图书信息"
// @Success      201 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "参数错误或书名重复"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定
	var req dto.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		response.Error(c, errInvalidBody, msgCreateFailed)
		return
	}

	// 2. 调用应用层用例
	_, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock.IntPtr(),
	})
	if err != nil {
		response.Error(c, err, msgCreateFailed)
		return
	}

	response.Message(c, http.StatusCreated, "Book added successfully")
}

// GetBook 图书详情
// @Summary      图书详情
// @Description  返回图书全部字段(包括已删除的图书)及其全部销售记录
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookDetailResponse
// @Failure      400 {object} response.ErrorBody "ID格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := bindBookID(c, msgGetFailed)
	if !ok {
		return
	}

	detail, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, msgGetFailed)
		return
	}

	response.JSON(c, http.StatusOK, dto.ToBookDetailResponse(detail))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  整体替换书名、作者、描述、价格、库存,五个字段都不能为空或0
// @Tags         图书
// @Accept       json
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "Invalid Data"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := bindBookID(c, msgUpdateFailed)
	if !ok {
		return
	}

	// 请求体无法解析时按空字段处理:先检查图书是否存在(404),再返回Invalid Data
	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(err)
		req = dto.UpdateBookRequest{}
	}

	err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:          id,
		Title:       req.Title,
		Author:      req.Author,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock.IntPtr(),
	})
	if err != nil {
		response.Error(c, err, msgUpdateFailed)
		return
	}

	response.Message(c, http.StatusOK, "Book updated successfully")
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Description  软删除:图书不再出现在列表中,详情仍可查看
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.MessageBody
// @Failure      400 {object} response.ErrorBody "ID格式错误"
// @Failure      404 {object} response.ErrorBody "图书不存在"
// @Failure      500 {object} response.ErrorBody
// @Router       /api/books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := bindBookID(c, msgDeleteFailed)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err, msgDeleteFailed)
		return
	}

	response.Message(c, http.StatusOK, "Book deleted successfully")
}

// bindBookID 解析路径中的图书ID,失败时直接写入400响应
func bindBookID(c *gin.Context, fallback string) (uint, bool) {
	var uri dto.BookURI
	if err := c.ShouldBindUri(&uri); err != nil {
		_ = c.Error(err)
		response.Error(c, errInvalidBookID, fallback)
		return 0, false
	}
	return uri.ID, true
}
