package entity

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeItem(t *testing.T, raw string) LineItem {
	t.Helper()
	var li LineItem
	require.NoError(t, json.Unmarshal([]byte(raw), &li))
	return li
}

func TestLineItemAliasFallbacks(t *testing.T) {
	li := decodeItem(t, `{"foodId":"7","name":"Ramen","price":12.5,"qty":2}`)
	assert.Equal(t, "7", li.FoodID)
	assert.Equal(t, 2, li.Qty)
	assert.True(t, li.Price.Equal(decimal.NewFromFloat(12.5)))

	// _id steps in when foodId is absent.
	li = decodeItem(t, `{"_id":"665f1c","name":"Ramen","amount":9}`)
	assert.Equal(t, "665f1c", li.FoodID)
	assert.True(t, li.Price.Equal(decimal.NewFromInt(9)))

	// id is the last resort, numeric references are stringified.
	li = decodeItem(t, `{"id":42,"name":"Ramen"}`)
	assert.Equal(t, "42", li.FoodID)

	// foodId wins over the others even when all are present.
	li = decodeItem(t, `{"foodId":"1","_id":"2","id":"3"}`)
	assert.Equal(t, "1", li.FoodID)

	// null and empty aliases are skipped, not taken.
	li = decodeItem(t, `{"foodId":null,"_id":"","id":"9"}`)
	assert.Equal(t, "9", li.FoodID)
}

func TestLineItemDefaults(t *testing.T) {
	li := decodeItem(t, `{"name":"Soup"}`)
	assert.Equal(t, "", li.FoodID)
	assert.Equal(t, 1, li.Qty, "missing qty defaults to 1")
	assert.True(t, li.Price.IsZero(), "missing price defaults to 0")

	// price wins over amount when both exist.
	li = decodeItem(t, `{"name":"Soup","price":5,"amount":7}`)
	assert.True(t, li.Price.Equal(decimal.NewFromInt(5)))

	// zero and negative qty fall back to 1.
	li = decodeItem(t, `{"name":"Soup","qty":0}`)
	assert.Equal(t, 1, li.Qty)
	li = decodeItem(t, `{"name":"Soup","qty":-3}`)
	assert.Equal(t, 1, li.Qty)
}

func TestCatalogID(t *testing.T) {
	li := LineItem{FoodID: "12"}
	id, ok := li.CatalogID()
	assert.True(t, ok)
	assert.Equal(t, 12, id)

	for _, ref := range []string{"", "abc", "665f1c9e8d", "-5", "0"} {
		_, ok := LineItem{FoodID: ref}.CatalogID()
		assert.False(t, ok, "ref %q must not parse", ref)
	}
}

func TestRevenue(t *testing.T) {
	li := LineItem{Qty: 3, Price: decimal.NewFromFloat(2.5)}
	assert.True(t, li.Revenue().Equal(decimal.NewFromFloat(7.5)))
}

func TestLineItemsScan(t *testing.T) {
	raw := `[{"foodId":"1","name":"Ramen","price":10,"qty":2},{"_id":"abc","name":"Soup","amount":4}]`

	var items LineItems
	require.NoError(t, items.Scan([]byte(raw)))
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].FoodID)
	assert.Equal(t, "abc", items[1].FoodID)
	assert.Equal(t, 1, items[1].Qty)

	var fromString LineItems
	require.NoError(t, fromString.Scan(raw))
	assert.Equal(t, items, fromString)

	var fromNil LineItems
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)
}

func TestCartDataScanNil(t *testing.T) {
	var c CartData
	require.NoError(t, c.Scan(nil))
	assert.Nil(t, c)

	require.NoError(t, c.Scan([]byte(`{"3":2}`)))
	assert.Equal(t, 2, c["3"])
}
