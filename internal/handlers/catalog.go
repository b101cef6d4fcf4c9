package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"mapposter-backend/internal/database"
	"mapposter-backend/internal/models"
	"mapposter-backend/internal/pricing"
)

// CatalogStore is the repository contract the catalog handlers consume.
type CatalogStore interface {
	List(ctx context.Context, resource string, parentID *int64) ([]map[string]any, error)
	Get(ctx context.Context, resource string, id int64) (map[string]any, error)
	Create(ctx context.Context, resource string, fields map[string]any) (map[string]any, error)
	Update(ctx context.Context, resource string, id int64, fields map[string]any) (map[string]any, error)
	Delete(ctx context.Context, resource string, id int64) error
	ReplaceAll(ctx context.Context, resource string, rows []map[string]any) ([]map[string]any, error)
}

type CatalogHandler struct {
	store CatalogStore
}

func NewCatalogHandler(store CatalogStore) *CatalogHandler {
	return &CatalogHandler{store: store}
}

// Register wires CRUD routes for every accepted resource spelling plus the
// product-scoped listings. Mutating routes run behind the given guards.
func (h *CatalogHandler) Register(api *gin.RouterGroup, guards ...gin.HandlerFunc) {
	for _, name := range database.AliasNames() {
		api.GET("/"+name, h.list(name))
		api.GET("/"+name+"/:id", h.get(name))
		api.POST("/"+name, withGuards(guards, h.create(name))...)
		api.PUT("/"+name+"/:id", withGuards(guards, h.update(name))...)
		api.PUT("/"+name, withGuards(guards, h.replaceAll(name))...)
		api.DELETE("/"+name+"/:id", withGuards(guards, h.delete(name))...)
	}

	api.GET("/products/:id/formats", h.listByProduct("formats"))
	api.GET("/products/:id/styles", h.listByProduct("styles"))
}

func withGuards(guards []gin.HandlerFunc, handler gin.HandlerFunc) []gin.HandlerFunc {
	chain := make([]gin.HandlerFunc, 0, len(guards)+1)
	chain = append(chain, guards...)
	return append(chain, handler)
}

func (h *CatalogHandler) list(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := h.store.List(c.Request.Context(), resource, nil)
		if err != nil {
			storageError(c, err)
			return
		}
		annotatePrices(resource, rows)
		c.JSON(http.StatusOK, rows)
	}
}

func (h *CatalogHandler) listByProduct(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathID(c)
		if !ok {
			return
		}
		rows, err := h.store.List(c.Request.Context(), resource, &productID)
		if err != nil {
			storageError(c, err)
			return
		}
		annotatePrices(resource, rows)
		c.JSON(http.StatusOK, rows)
	}
}

func (h *CatalogHandler) get(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		row, err := h.store.Get(c.Request.Context(), resource, id)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
			return
		}
		if err != nil {
			storageError(c, err)
			return
		}
		annotatePrices(resource, []map[string]any{row})
		c.JSON(http.StatusOK, row)
	}
}

func (h *CatalogHandler) create(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var fields map[string]any
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
			return
		}
		row, err := h.store.Create(c.Request.Context(), resource, fields)
		if err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusCreated, row)
	}
}

func (h *CatalogHandler) update(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var fields map[string]any
		if err := c.ShouldBindJSON(&fields); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
			return
		}
		row, err := h.store.Update(c.Request.Context(), resource, id, fields)
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
			return
		}
		if err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusOK, row)
	}
}

// replaceAll is the admin bulk-save: the whole table is swapped for the
// posted sequence.
func (h *CatalogHandler) replaceAll(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rows []map[string]any
		if err := c.ShouldBindJSON(&rows); err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
			return
		}
		stored, err := h.store.ReplaceAll(c.Request.Context(), resource, rows)
		if err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusOK, stored)
	}
}

func (h *CatalogHandler) delete(resource string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		if err := h.store.Delete(c.Request.Context(), resource, id); err != nil {
			storageError(c, err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse{Success: true})
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid id"})
		return 0, false
	}
	return id, true
}

func storageError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "storage error",
		Message: err.Error(),
	})
}

// annotatePrices adds the derived final_price to rows of priced resources.
func annotatePrices(resource string, rows []map[string]any) {
	sc, ok := database.LookupSchema(resource)
	if !ok || !sc.Priced {
		return
	}
	for _, row := range rows {
		pricing.AnnotateRow(row)
	}
}
