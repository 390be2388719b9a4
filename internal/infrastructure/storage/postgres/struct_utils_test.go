package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"kassa/internal/core/entity"
	"kassa/internal/core/types"
)

type mockCatalog struct {
	entity.Catalog
	Currency string      `db:"currency" json:"currency"`
	Limit    types.Money `db:"credit_limit" json:"creditLimit"`
	Ignored  string      `db:"-" json:"-"`
	NoTag    string
}

func TestExtractDBColumns(t *testing.T) {
	cols := ExtractDBColumns[mockCatalog]()

	expected := []string{"id", "name", "is_active", "created_at", "updated_at", "currency", "credit_limit"}
	for _, col := range expected {
		assert.Contains(t, cols, col)
	}

	assert.NotContains(t, cols, "-")
	assert.NotContains(t, cols, "NoTag")
}

func TestStructToMap(t *testing.T) {
	cat := mockCatalog{
		Catalog:  entity.NewCatalog("Test Account"),
		Currency: "UZS",
		Limit:    types.MustMoney("1500.50"),
		Ignored:  "should not appear",
	}

	m := StructToMap(cat)

	assert.Equal(t, cat.ID, m["id"])
	assert.Equal(t, "Test Account", m["name"])
	assert.Equal(t, true, m["is_active"])
	assert.Equal(t, "UZS", m["currency"])
	assert.True(t, cat.Limit.Equal(m["credit_limit"].(types.Money)))
	assert.NotContains(t, m, "-")
}

func TestStructToMap_PointerInput(t *testing.T) {
	cat := &mockCatalog{
		Catalog:  entity.NewCatalog("Pointer"),
		Currency: "USD",
	}

	m := StructToMap(cat)

	assert.Equal(t, "Pointer", m["name"])
	assert.Equal(t, "USD", m["currency"])
}
