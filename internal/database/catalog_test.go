package database

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListQuery_Ordering(t *testing.T) {
	for _, name := range AliasNames() {
		sc, ok := LookupSchema(name)
		assert.True(t, ok)

		query := listQuery(sc, false)
		assert.NotContains(t, query, "WHERE")
		// ties on sort_order break by id; absent sort keys go last
		assert.Contains(t, query, " ORDER BY sort_order ASC NULLS LAST, id ASC")
	}
}

func TestListQuery_ParentScope(t *testing.T) {
	sc, _ := LookupSchema("formats")
	assert.Equal(t,
		"SELECT id, product_id, size_cm, size_in, width_px, height_px, base_price, discount_type, discount_value, active, sort_order, created_at, updated_at"+
			" FROM formats WHERE product_id = $1 ORDER BY sort_order ASC NULLS LAST, id ASC",
		listQuery(sc, true))

	// flat catalogs ignore the scope flag
	flat, _ := LookupSchema("pin_colors")
	assert.NotContains(t, listQuery(flat, true), "WHERE")
}

func TestUpdateQuery_FullReplace(t *testing.T) {
	sc, _ := LookupSchema("styles")
	assert.Equal(t,
		"UPDATE styles SET product_id = $1, name = $2, active = $3, preview_url = $4, icon_url = $5, sort_order = $6"+
			", updated_at = NOW() WHERE id = $7 RETURNING id, product_id, name, active, preview_url, icon_url, sort_order, created_at, updated_at",
		updateQuery(sc))
}

func TestUpdateQuery_RewritesEveryColumn(t *testing.T) {
	// full-replace semantics: a column missing from the SET list would keep
	// its prior value instead of being nulled
	for _, name := range []string{"products", "formats", "styles", "frame_colors", "pin_shapes", "pin_colors"} {
		sc, ok := LookupSchema(name)
		assert.True(t, ok)
		query := updateQuery(sc)
		for _, col := range sc.Columns {
			assert.Contains(t, query, col.Name+" = $", "resource %s", name)
		}
	}
}

func TestInsertQuery(t *testing.T) {
	sc, _ := LookupSchema("pin_colors")
	assert.Equal(t,
		"INSERT INTO pin_colors (name, hex, active, icon_url, sort_order) VALUES ($1, $2, $3, $4, $5)"+
			" RETURNING id, name, hex, active, icon_url, sort_order, created_at, updated_at",
		insertQuery(sc))
}

func TestCoerceValue_Booleans(t *testing.T) {
	cases := []struct {
		in   any
		want any
	}{
		{nil, nil},
		{true, true},
		{false, false},
		{float64(1), true},
		{float64(0), false},
		{"1", true},
		{"true", true},
		{"t", true},
		{"0", false},
		{"false", false},
		{"f", false},
		// unrecognized spellings pass through for the datastore to judge
		{"yes", "yes"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, coerceValue(KindBool, tc.in), "input %v", tc.in)
	}
}

func TestCoerceValue_Ints(t *testing.T) {
	assert.Equal(t, int64(7), coerceValue(KindInt, float64(7)))
	assert.Nil(t, coerceValue(KindInt, nil))
}

func TestCoerceValue_JSON(t *testing.T) {
	raw := json.RawMessage(`[{"lat":1}]`)
	assert.Equal(t, []byte(`[{"lat":1}]`), coerceValue(KindJSON, raw))

	coerced := coerceValue(KindJSON, map[string]any{"a": 1})
	assert.Equal(t, []byte(`{"a":1}`), coerced)
}

func TestMigration_PinsColumnKeepsRawText(t *testing.T) {
	schema, err := migrationsFS.ReadFile("migrations/001_initial_schema.sql")
	assert.NoError(t, err)
	// json (not jsonb) stores the submitted text verbatim, so the pin list
	// reads back byte for byte; jsonb would reformat and reorder it
	assert.Contains(t, string(schema), "pins JSON,")
	assert.NotContains(t, string(schema), "pins JSONB")
}
