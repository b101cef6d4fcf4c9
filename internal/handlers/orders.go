package handlers

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"mapposter-backend/internal/database"
	"mapposter-backend/internal/models"
	"mapposter-backend/internal/sheets"
)

const defaultOrderLimit = 50

// OrderStore is the repository contract the order handlers consume.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *models.Order) (*models.Order, error)
	GetOrderByToken(ctx context.Context, token string) (*models.Order, error)
	ListOrders(ctx context.Context, limit int) ([]models.Order, error)
}

type OrdersHandler struct {
	store   OrderStore
	sheets  *sheets.Client
	baseURL string
}

func NewOrdersHandler(store OrderStore, sheetsClient *sheets.Client, baseURL string) *OrdersHandler {
	return &OrdersHandler{
		store:   store,
		sheets:  sheetsClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// SubmitOrder persists a checkout submission and mints its preview link. The
// payload is stored as-is; the datastore is the only validator. The sheet
// mirror is dispatched after the response, never on the client's path.
func (h *OrdersHandler) SubmitOrder(c *gin.Context) {
	var req models.SubmitOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return
	}

	token, err := generatePreviewToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to generate preview token", Message: err.Error()})
		return
	}

	order := &models.Order{
		ShopOrderID:  nullString(req.ShopOrderID),
		CustomerIP:   sql.NullString{String: c.ClientIP(), Valid: true},
		Email:        nullString(req.Email),
		Lat:          nullFloat(req.Lat),
		Lng:          nullFloat(req.Lng),
		MapStyle:     nullString(req.MapStyle),
		MapSize:      nullString(req.MapSize),
		TextFront:    nullString(req.TextFront),
		TextBack:     nullString(req.TextBack),
		Pins:         req.Pins,
		PreviewToken: token,
	}

	stored, err := h.store.CreateOrder(c.Request.Context(), order)
	if err != nil {
		storageError(c, err)
		return
	}

	previewLink := h.baseURL + "/preview/" + stored.PreviewToken
	c.JSON(http.StatusCreated, models.SubmitOrderResponse{
		Order:       models.NewOrderResponse(stored),
		PreviewLink: previewLink,
	})

	if h.sheets.Enabled() {
		go h.mirrorOrder(stored, previewLink)
	}
}

// mirrorOrder appends the order to the spreadsheet. Best effort: failures
// are logged and never retried.
func (h *OrdersHandler) mirrorOrder(o *models.Order, previewLink string) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	row := sheets.MirrorRow{
		MirrorID:    uuid.NewString(),
		OrderID:     o.ID,
		ShopOrderID: o.ShopOrderID.String,
		Email:       o.Email.String,
		MapStyle:    o.MapStyle.String,
		MapSize:     o.MapSize.String,
		TextFront:   o.TextFront.String,
		TextBack:    o.TextBack.String,
		Pins:        o.Pins,
		PreviewURL:  previewLink,
		CreatedAt:   o.CreatedAt,
	}
	if err := h.sheets.AppendRow(ctx, row); err != nil {
		log.Printf("order %d: sheet mirror failed: %v", o.ID, err)
	}
}

// GetOrderByToken returns the stored order for a preview token.
func (h *OrdersHandler) GetOrderByToken(c *gin.Context) {
	order, err := h.store.GetOrderByToken(c.Request.Context(), c.Param("token"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
		return
	}
	if err != nil {
		storageError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewOrderResponse(order))
}

// ListOrders returns the most recent orders, newest first, capped by the
// limit query parameter (default 50).
func (h *OrdersHandler) ListOrders(c *gin.Context) {
	limit := defaultOrderLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid limit"})
			return
		}
		limit = parsed
	}

	orders, err := h.store.ListOrders(c.Request.Context(), limit)
	if err != nil {
		storageError(c, err)
		return
	}

	responses := make([]models.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = models.NewOrderResponse(&orders[i])
	}
	c.JSON(http.StatusOK, models.OrderListResponse{Orders: responses})
}

// generatePreviewToken returns 128 bits of crypto randomness, hex encoded.
// Unguessable by width; the preview_token uniqueness constraint is the
// collision safety net.
func generatePreviewToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate preview token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func nullString(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullFloat(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}
