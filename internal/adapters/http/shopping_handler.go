package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/daybook/core/internal/application/services"
	"github.com/daybook/core/internal/domain/entities"
	"github.com/daybook/core/internal/infrastructure/logger"
	"github.com/daybook/core/internal/ports"
)

// ShoppingHandler handles shopping list requests
type ShoppingHandler struct {
	shoppingService *services.ShoppingService
	logger          *logger.Logger
}

// NewShoppingHandler creates a new shopping handler
func NewShoppingHandler(shoppingService *services.ShoppingService, logger *logger.Logger) *ShoppingHandler {
	return &ShoppingHandler{
		shoppingService: shoppingService,
		logger:          logger,
	}
}

// CreateItem godoc
// @Summary Add a shopping item
// @Tags shopping
// @Accept json
// @Produce json
// @Param request body ports.CreateShoppingItemRequest true "Item data"
// @Success 201 {object} entities.ShoppingItem
// @Failure 400 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /shopping [post]
func (h *ShoppingHandler) CreateItem(c echo.Context) error {
	var req ports.CreateShoppingItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.shoppingService.CreateItem(c.Request().Context(), req)
	if err != nil {
		h.logger.Errorw("Create shopping item failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusCreated, item)
}

// GetItem godoc
// @Summary Get shopping item by ID
// @Tags shopping
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} entities.ShoppingItem
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /shopping/{id} [get]
func (h *ShoppingHandler) GetItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.shoppingService.GetItem(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, item)
}

// UpdateItem godoc
// @Summary Update a shopping item
// @Tags shopping
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body ports.UpdateShoppingItemRequest true "Fields to update"
// @Success 200 {object} entities.ShoppingItem
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /shopping/{id} [put]
func (h *ShoppingHandler) UpdateItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req ports.UpdateShoppingItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	item, err := h.shoppingService.UpdateItem(c.Request().Context(), id, req)
	if err != nil {
		h.logger.Errorw("Update shopping item failed", "error", err, "item_id", id)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, item)
}

// DeleteItem godoc
// @Summary Delete a shopping item
// @Tags shopping
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} ports.MessageResponse
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /shopping/{id} [delete]
func (h *ShoppingHandler) DeleteItem(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.shoppingService.DeleteItem(c.Request().Context(), id); err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.MessageResponse{Message: "Shopping item deleted"})
}

// ListItems godoc
// @Summary List shopping items
// @Description List items filtered by mode, category and search text
// @Tags shopping
// @Produce json
// @Param mode query string false "all, pending, purchased or recurring"
// @Param category query string false "Category filter"
// @Param search query string false "Search in name and notes"
// @Param limit query int false "Page size"
// @Param offset query int false "Page offset"
// @Success 200 {object} ports.PaginatedResponse[entities.ShoppingItem]
// @Security BearerAuth
// @Router /shopping [get]
func (h *ShoppingHandler) ListItems(c echo.Context) error {
	filter := ports.ShoppingFilter{
		Mode:   ports.ShoppingListMode(c.QueryParam("mode")),
		SortBy: c.QueryParam("sort_by"),
	}
	if raw := c.QueryParam("category"); raw != "" {
		filter.Category = &raw
	}
	if raw := c.QueryParam("search"); raw != "" {
		filter.Search = &raw
	}

	limit, err := parseIntParam(c, "limit", 50)
	if err != nil {
		return err
	}
	offset, err := parseIntParam(c, "offset", 0)
	if err != nil {
		return err
	}
	filter.Limit = limit
	filter.Offset = offset

	items, total, err := h.shoppingService.ListItems(c.Request().Context(), filter)
	if err != nil {
		h.logger.Errorw("List shopping items failed", "error", err)
		return httpError(err)
	}

	return c.JSON(http.StatusOK, ports.PaginatedResponse[*entities.ShoppingItem]{
		Data:   items,
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// TogglePurchased godoc
// @Summary Toggle an item's purchased state
// @Description Flip the completed flag, stamping the purchase time on completion
// @Tags shopping
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} entities.ShoppingItem
// @Failure 404 {object} ports.ErrorResponse
// @Security BearerAuth
// @Router /shopping/{id}/toggle [patch]
func (h *ShoppingHandler) TogglePurchased(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	item, err := h.shoppingService.TogglePurchased(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, item)
}

// Categories godoc
// @Summary List shopping categories
// @Tags shopping
// @Produce json
// @Success 200 {array} string
// @Security BearerAuth
// @Router /shopping/categories [get]
func (h *ShoppingHandler) Categories(c echo.Context) error {
	categories, err := h.shoppingService.Categories(c.Request().Context())
	if err != nil {
		return httpError(err)
	}

	return c.JSON(http.StatusOK, categories)
}
