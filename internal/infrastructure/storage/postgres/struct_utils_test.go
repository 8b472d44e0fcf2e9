package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gestock/internal/core/id"
	"gestock/internal/core/types"
	"gestock/internal/domain/catalogs/product"
	"gestock/internal/domain/documents/stock_entry"
)

func TestExtractDBColumns_Product(t *testing.T) {
	cols := ExtractDBColumns[product.Product]()

	// Embedded BaseEntity/Catalog fields surface first-class.
	assert.Contains(t, cols, "id")
	assert.Contains(t, cols, "version")
	assert.Contains(t, cols, "name")
	assert.Contains(t, cols, "is_active")

	assert.Contains(t, cols, "store_id")
	assert.Contains(t, cols, "reference")
	assert.Contains(t, cols, "purchase_price")
	assert.Contains(t, cols, "sale_price")
	assert.Contains(t, cols, "min_stock_alert")
}

func TestExtractDBColumns_SkipsUntaggedAndIgnored(t *testing.T) {
	cols := ExtractDBColumns[stock_entry.StockEntry]()

	assert.Contains(t, cols, "supplier_id")
	assert.Contains(t, cols, "total_amount")
	// Items carry db:"-" and live in their own table.
	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "items")
}

func TestStructToMap(t *testing.T) {
	storeID := id.New()
	p := product.NewProduct(storeID, "REF-1", "Sugar 1kg")
	p.SalePrice = types.MustMoney("750")

	m := StructToMap(p)

	assert.Equal(t, p.ID, m["id"])
	assert.Equal(t, storeID, m["store_id"])
	assert.Equal(t, "REF-1", m["reference"])
	assert.Equal(t, "Sugar 1kg", m["name"])
	assert.Equal(t, 1, m["version"])
	_, hasItems := m["-"]
	assert.False(t, hasItems)
}

func TestStructToMap_NonStruct(t *testing.T) {
	assert.Nil(t, StructToMap(42))
	assert.Nil(t, StructToMap("hello"))
}

func TestStructToMap_CachedMetadataStaysCorrect(t *testing.T) {
	a := product.NewProduct(id.New(), "A", "First")
	b := product.NewProduct(id.New(), "B", "Second")

	ma := StructToMap(a)
	mb := StructToMap(b)

	assert.Equal(t, "A", ma["reference"])
	assert.Equal(t, "B", mb["reference"])
	assert.NotEqual(t, ma["id"], mb["id"])
}
