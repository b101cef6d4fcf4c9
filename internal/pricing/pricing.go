// Package pricing derives display prices from a base price and a discount
// rule. Prices are computed at read time and never persisted.
package pricing

type DiscountType string

const (
	DiscountNone    DiscountType = "none"
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// FinalPrice applies a discount rule to a base price. Unknown or empty
// discount types behave as none. Results are not clamped at zero; a fixed
// discount larger than the base yields a negative price, matching the
// storefront's historical behavior.
func FinalPrice(base float64, discountType DiscountType, value float64) float64 {
	switch discountType {
	case DiscountPercent:
		return base * (1 - value/100)
	case DiscountFixed:
		return base - value
	default:
		return base
	}
}

// AnnotateRow adds the derived final_price to a catalog row that carries
// pricing columns. Rows without a base price are left untouched.
func AnnotateRow(row map[string]any) {
	base, ok := row["base_price"].(float64)
	if !ok {
		return
	}
	discountType, _ := row["discount_type"].(string)
	value, _ := row["discount_value"].(float64)
	row["final_price"] = FinalPrice(base, DiscountType(discountType), value)
}
