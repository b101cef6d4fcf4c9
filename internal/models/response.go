package models

import (
	"encoding/json"
	"time"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type AdminCheckResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	Error   string `json:"error,omitempty"`
}

// OrderResponse is the JSON shape of a stored order. Null columns render as
// JSON null rather than the sql.Null* wrapper structs.
type OrderResponse struct {
	ID           int64           `json:"id"`
	ShopOrderID  *string         `json:"shop_order_id"`
	CustomerIP   *string         `json:"customer_ip"`
	Email        *string         `json:"email"`
	Lat          *float64        `json:"lat"`
	Lng          *float64        `json:"lng"`
	MapStyle     *string         `json:"map_style"`
	MapSize      *string         `json:"map_size"`
	TextFront    *string         `json:"text_front"`
	TextBack     *string         `json:"text_back"`
	Pins         json.RawMessage `json:"pins"`
	PreviewToken string          `json:"preview_token"`
	Generated    bool            `json:"generated"`
	Uploaded     bool            `json:"uploaded"`
	CreatedAt    time.Time       `json:"created_at"`
}

type SubmitOrderResponse struct {
	Order       OrderResponse `json:"order"`
	PreviewLink string        `json:"preview_link"`
}

type OrderListResponse struct {
	Orders []OrderResponse `json:"orders"`
}

// NewOrderResponse converts a stored order into its JSON shape.
func NewOrderResponse(o *Order) OrderResponse {
	resp := OrderResponse{
		ID:           o.ID,
		Pins:         o.Pins,
		PreviewToken: o.PreviewToken,
		Generated:    o.Generated,
		Uploaded:     o.Uploaded,
		CreatedAt:    o.CreatedAt,
	}
	if o.ShopOrderID.Valid {
		resp.ShopOrderID = &o.ShopOrderID.String
	}
	if o.CustomerIP.Valid {
		resp.CustomerIP = &o.CustomerIP.String
	}
	if o.Email.Valid {
		resp.Email = &o.Email.String
	}
	if o.Lat.Valid {
		resp.Lat = &o.Lat.Float64
	}
	if o.Lng.Valid {
		resp.Lng = &o.Lng.Float64
	}
	if o.MapStyle.Valid {
		resp.MapStyle = &o.MapStyle.String
	}
	if o.MapSize.Valid {
		resp.MapSize = &o.MapSize.String
	}
	if o.TextFront.Valid {
		resp.TextFront = &o.TextFront.String
	}
	if o.TextBack.Valid {
		resp.TextBack = &o.TextBack.String
	}
	return resp
}
