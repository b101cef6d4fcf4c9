package models

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Order is a checkout submission as stored in the orders table. Rows are
// written once at intake; the generated/uploaded flags belong to a downstream
// render worker and are never touched by this API.
type Order struct {
	ID           int64           `json:"id"`
	ShopOrderID  sql.NullString  `json:"shop_order_id"`
	CustomerIP   sql.NullString  `json:"customer_ip"`
	Email        sql.NullString  `json:"email"`
	Lat          sql.NullFloat64 `json:"lat"`
	Lng          sql.NullFloat64 `json:"lng"`
	MapStyle     sql.NullString  `json:"map_style"`
	MapSize      sql.NullString  `json:"map_size"`
	TextFront    sql.NullString  `json:"text_front"`
	TextBack     sql.NullString  `json:"text_back"`
	Pins         json.RawMessage `json:"pins"`
	PreviewToken string          `json:"preview_token"`
	Generated    bool            `json:"generated"`
	Uploaded     bool            `json:"uploaded"`
	CreatedAt    time.Time       `json:"created_at"`
}
