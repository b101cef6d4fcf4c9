package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"mapposter-backend/internal/pricing"
)

func TestFinalPrice_None(t *testing.T) {
	assert.Equal(t, 100.0, pricing.FinalPrice(100, pricing.DiscountNone, 20))
	assert.Equal(t, 100.0, pricing.FinalPrice(100, pricing.DiscountNone, 0))
}

func TestFinalPrice_Percent(t *testing.T) {
	assert.Equal(t, 80.0, pricing.FinalPrice(100, pricing.DiscountPercent, 20))
	assert.Equal(t, 0.0, pricing.FinalPrice(100, pricing.DiscountPercent, 100))
}

func TestFinalPrice_Fixed(t *testing.T) {
	assert.Equal(t, 80.0, pricing.FinalPrice(100, pricing.DiscountFixed, 20))
}

func TestFinalPrice_UnknownTypeBehavesAsNone(t *testing.T) {
	assert.Equal(t, 100.0, pricing.FinalPrice(100, "mystery", 50))
	assert.Equal(t, 100.0, pricing.FinalPrice(100, "", 50))
}

func TestFinalPrice_NotClamped(t *testing.T) {
	// negative prices are intentionally passed through
	assert.Equal(t, -20.0, pricing.FinalPrice(30, pricing.DiscountFixed, 50))
}

func TestAnnotateRow(t *testing.T) {
	row := map[string]any{
		"base_price":     100.0,
		"discount_type":  "percent",
		"discount_value": 25.0,
	}
	pricing.AnnotateRow(row)
	assert.Equal(t, 75.0, row["final_price"])
}

func TestAnnotateRow_NoBasePrice(t *testing.T) {
	row := map[string]any{"name": "no pricing here"}
	pricing.AnnotateRow(row)
	_, ok := row["final_price"]
	assert.False(t, ok)
}

func TestAnnotateRow_NullDiscountColumns(t *testing.T) {
	row := map[string]any{
		"base_price":     49.9,
		"discount_type":  nil,
		"discount_value": nil,
	}
	pricing.AnnotateRow(row)
	assert.Equal(t, 49.9, row["final_price"])
}
