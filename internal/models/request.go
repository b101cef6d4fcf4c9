package models

import "encoding/json"

// SubmitOrderRequest carries a checkout submission. Optional fields are
// pointers so a null in the payload stays distinct from an empty string.
type SubmitOrderRequest struct {
	ShopOrderID *string         `json:"shop_order_id"`
	Email       *string         `json:"email"`
	Lat         *float64        `json:"lat"`
	Lng         *float64        `json:"lng"`
	MapStyle    *string         `json:"map_style"`
	MapSize     *string         `json:"map_size"`
	TextFront   *string         `json:"text_front"`
	TextBack    *string         `json:"text_back"`
	Pins        json.RawMessage `json:"pins"`
}

type AdminCheckRequest struct {
	Password string `json:"password"`
}
