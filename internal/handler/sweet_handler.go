package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// usecaseのエラーをHTTPステータスへ変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrSweetNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: "sweet not found"})
	case errors.Is(err, usecase.ErrInsufficientStock):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "insufficient stock"})
	case errors.Is(err, usecase.ErrInvalidQuantity),
		errors.Is(err, usecase.ErrMissingFields),
		errors.Is(err, usecase.ErrInvalidPrice),
		errors.Is(err, usecase.ErrInvalidStock):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, usecase.ErrNothingToUpdate):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nothing to update"})
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		//ロック待ちのままタイムアウトした等。状態は変わっていない。
		return c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "busy"})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// contextからuser_idを取り出す
func getUserIDFromContext(c echo.Context) (int64, bool) {
	raw := c.Get(middleware.CtxUserIDKey)
	id, ok := raw.(int64)
	if !ok || id <= 0 {
		return 0, false
	}
	return id, true
}

// /api/sweets のAPI（カタログCRUD＋購入・補充）
type SweetHandler struct {
	sweets *usecase.SweetUsecase
	stock  *usecase.StockUsecase
}

// DI
func NewSweetHandler(sweets *usecase.SweetUsecase, stock *usecase.StockUsecase) *SweetHandler {
	return &SweetHandler{sweets: sweets, stock: stock}
}

// 認証必須のルートを登録。書き込み系はadminだけ。
func (h *SweetHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/sweets")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.create, middleware.RequireAction(model.ActionCreate))
	g.GET("", h.list, middleware.RequireAction(model.ActionRead))
	g.GET("/search", h.search, middleware.RequireAction(model.ActionSearch))
	g.PUT("/:id", h.update, middleware.RequireAction(model.ActionUpdate))
	g.DELETE("/:id", h.delete, middleware.RequireAction(model.ActionDelete))

	g.POST("/:id/purchase", h.purchase, middleware.RequireAction(model.ActionPurchase))
	g.POST("/:id/restock", h.restock, middleware.RequireAction(model.ActionRestock))
}

type SweetCreateRequest struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    *int64 `json:"price"`
	Quantity *int64 `json:"quantity"`
}

type SweetUpdateRequest struct {
	Name     *string `json:"name"`
	Category *string `json:"category"`
	Price    *int64  `json:"price"`
}

type QuantityRequest struct {
	Quantity *int64 `json:"quantity"`
}

func (h *SweetHandler) create(c echo.Context) error {
	var req SweetCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	//price/quantity未指定も「missing fields」
	if req.Price == nil || req.Quantity == nil {
		return writeError(c, usecase.ErrMissingFields)
	}

	s, err := h.sweets.Create(c.Request().Context(), usecase.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    *req.Price,
		Quantity: *req.Quantity,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, s)
}

func (h *SweetHandler) list(c echo.Context) error {
	sweets, err := h.sweets.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, sweets)
}

func (h *SweetHandler) search(c echo.Context) error {
	var minPrice *int64
	if v := c.QueryParam("minPrice"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid minPrice"})
		}
		minPrice = &x
	}

	var maxPrice *int64
	if v := c.QueryParam("maxPrice"); v != "" {
		x, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid maxPrice"})
		}
		maxPrice = &x
	}

	sweets, err := h.sweets.Search(c.Request().Context(), usecase.SearchSweetsInput{
		Name:     c.QueryParam("name"),
		Category: c.QueryParam("category"),
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, sweets)
}

func (h *SweetHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req SweetUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	s, err := h.sweets.Update(c.Request().Context(), id, usecase.UpdateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, s)
}

func (h *SweetHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.sweets.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *SweetHandler) purchase(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == nil {
		return writeError(c, usecase.ErrInvalidQuantity)
	}

	s, err := h.stock.Purchase(c.Request().Context(), userID, id, *req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, s)
}

func (h *SweetHandler) restock(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req QuantityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == nil {
		return writeError(c, usecase.ErrInvalidQuantity)
	}

	s, err := h.stock.Restock(c.Request().Context(), userID, id, *req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, s)
}
