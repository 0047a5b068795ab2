package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLineItemSnapshotsGood(t *testing.T) {
	g := silverSword()
	li := NewLineItem(g, 3)

	assert.Equal(t, g.ID, li.ID)
	assert.Equal(t, g.Name, li.Name)
	assert.Equal(t, g.Weight, li.Weight)
	assert.Equal(t, 3, li.Quantity)
	assert.True(t, li.Subtotal().Equal(decimal.NewFromInt(750)))

	// Editing the good afterwards leaves the snapshot alone.
	g.Name = "Rusty Sword"
	g.Value = decimal.NewFromInt(1)
	assert.Equal(t, "Silver Sword", li.Name)
	assert.True(t, li.Value.Equal(decimal.NewFromInt(250)))
}

func TestTotal(t *testing.T) {
	potion := Good{ID: 2, Name: "Swallow Potion", Value: decimal.NewFromInt(50)}
	items := []LineItem{NewLineItem(silverSword(), 1), NewLineItem(potion, 2)}
	assert.True(t, Total(items).Equal(decimal.NewFromInt(350)))
	assert.True(t, Total(nil).IsZero())
}

func TestSaleJSONShape(t *testing.T) {
	sale := Sale{
		ID:          1,
		Date:        NewDate(2025, time.March, 21),
		HunterID:    101,
		ItemsSold:   []LineItem{NewLineItem(silverSword(), 1)},
		TotalAmount: decimal.NewFromInt(250),
	}
	data, err := json.Marshal(sale)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "2025-03-21", raw["date"])
	assert.Equal(t, float64(101), raw["hunterId"])
	assert.Equal(t, float64(250), raw["totalAmount"])
	items, ok := raw["itemsSold"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	assert.Equal(t, float64(250), items[0].(map[string]any)["value"])
}

func TestTransactionValidate(t *testing.T) {
	bad := []LineItem{{ID: 1, Name: "x", Quantity: -1}}
	assert.ErrorIs(t, Sale{ItemsSold: bad}.Validate(), ErrInvalidQuantity)
	assert.ErrorIs(t, Purchase{ItemsPurchased: bad}.Validate(), ErrInvalidQuantity)
	assert.ErrorIs(t, Return{ItemsReturned: bad}.Validate(), ErrInvalidQuantity)
	assert.ErrorIs(t, Sale{TotalAmount: decimal.NewFromInt(-1)}.Validate(), ErrInvalidValue)
	assert.NoError(t, Sale{}.Validate())
}

func TestTransactionUpdatesApply(t *testing.T) {
	d := NewDate(2025, time.April, 1)
	id := 7

	s := Sale{ID: 1, HunterID: 2, TotalAmount: decimal.NewFromInt(10)}
	SaleUpdate{Date: &d, HunterID: &id}.Apply(&s)
	assert.Equal(t, 7, s.HunterID)
	assert.Equal(t, d, s.Date)
	assert.True(t, s.TotalAmount.Equal(decimal.NewFromInt(10)))

	p := Purchase{ID: 1, MerchantID: 2}
	PurchaseUpdate{MerchantID: &id}.Apply(&p)
	assert.Equal(t, 7, p.MerchantID)
	assert.True(t, p.Date.IsZero())

	r := Return{ID: 1, CustomerID: 2}
	ReturnUpdate{CustomerID: &id}.Apply(&r)
	assert.Equal(t, 7, r.CustomerID)
}
