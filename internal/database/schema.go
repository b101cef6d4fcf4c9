package database

import "sort"

// ColumnKind drives value coercion at the storage boundary.
type ColumnKind int

const (
	KindText ColumnKind = iota
	KindInt
	KindFloat
	KindBool
	KindJSON
)

type Column struct {
	Name string
	Kind ColumnKind
}

// Schema is the statically declared shape of one catalog table. Every SQL
// identifier the catalog store uses comes from here, never from request data.
type Schema struct {
	Name      string // canonical resource name
	Table     string
	ParentCol string // set when rows belong to a product
	Priced    bool   // rows carry base_price/discount columns
	Columns   []Column
}

var schemas = []Schema{
	{
		Name:  "products",
		Table: "products",
		Columns: []Column{
			{"name", KindText},
			{"description", KindText},
			{"active", KindBool},
			{"allow_left", KindBool},
			{"allow_center", KindBool},
			{"allow_right", KindBool},
			{"allow_back", KindBool},
			{"allow_top", KindBool},
			{"allow_pins", KindBool},
			{"allow_gift", KindBool},
			{"allow_frames", KindBool},
			{"orientation", KindText},
			{"width_px", KindInt},
			{"height_px", KindInt},
			{"sort_order", KindInt},
		},
	},
	{
		Name:      "formats",
		Table:     "formats",
		ParentCol: "product_id",
		Priced:    true,
		Columns: []Column{
			{"product_id", KindInt},
			{"size_cm", KindText},
			{"size_in", KindText},
			{"width_px", KindInt},
			{"height_px", KindInt},
			{"base_price", KindFloat},
			{"discount_type", KindText},
			{"discount_value", KindFloat},
			{"active", KindBool},
			{"sort_order", KindInt},
		},
	},
	{
		Name:      "styles",
		Table:     "styles",
		ParentCol: "product_id",
		Columns: []Column{
			{"product_id", KindInt},
			{"name", KindText},
			{"active", KindBool},
			{"preview_url", KindText},
			{"icon_url", KindText},
			{"sort_order", KindInt},
		},
	},
	{
		Name:  "frame_colors",
		Table: "frame_colors",
		Columns: []Column{
			{"name", KindText},
			{"hex", KindText},
			{"active", KindBool},
			{"image_url", KindText},
			{"sort_order", KindInt},
		},
	},
	{
		Name:  "pin_shapes",
		Table: "pin_shapes",
		Columns: []Column{
			{"name", KindText},
			{"active", KindBool},
			{"icon_url", KindText},
			{"sort_order", KindInt},
		},
	},
	{
		Name:  "pin_colors",
		Table: "pin_colors",
		Columns: []Column{
			{"name", KindText},
			{"hex", KindText},
			{"active", KindBool},
			{"icon_url", KindText},
			{"sort_order", KindInt},
		},
	},
}

// aliases maps every accepted URL spelling to a canonical resource name. The
// admin UI and older storefront builds disagree on hyphen vs underscore.
var aliases = map[string]string{
	"products":     "products",
	"formats":      "formats",
	"styles":       "styles",
	"frame-colors": "frame_colors",
	"frame_colors": "frame_colors",
	"pin-shapes":   "pin_shapes",
	"pin_shapes":   "pin_shapes",
	"pin-colors":   "pin_colors",
	"pin_colors":   "pin_colors",
}

// LookupSchema resolves a resource name (any accepted spelling) to its schema.
func LookupSchema(resource string) (*Schema, bool) {
	canonical, ok := aliases[resource]
	if !ok {
		return nil, false
	}
	for i := range schemas {
		if schemas[i].Name == canonical {
			return &schemas[i], true
		}
	}
	return nil, false
}

// AliasNames returns every accepted resource spelling, sorted, for route
// registration.
func AliasNames() []string {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// selectList is the full read column list: id first, writable columns, then
// the row timestamps.
func (s *Schema) selectList() string {
	list := "id"
	for _, col := range s.Columns {
		list += ", " + col.Name
	}
	return list + ", created_at, updated_at"
}

// scanNames matches selectList positionally.
func (s *Schema) scanNames() []string {
	names := make([]string, 0, len(s.Columns)+3)
	names = append(names, "id")
	for _, col := range s.Columns {
		names = append(names, col.Name)
	}
	return append(names, "created_at", "updated_at")
}

func (s *Schema) columnKind(name string) ColumnKind {
	for _, col := range s.Columns {
		if col.Name == name {
			return col.Kind
		}
	}
	return KindText
}
