package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// fakeSource is an in-memory Source.
type fakeSource struct {
	merchants []types.Merchant
	hunters   []types.Hunter
	sales     []types.Sale
	purchases []types.Purchase
	returns   []types.Return
}

func (f *fakeSource) AllMerchants() []types.Merchant { return f.merchants }
func (f *fakeSource) AllHunters() []types.Hunter     { return f.hunters }
func (f *fakeSource) AllSales() []types.Sale         { return f.sales }
func (f *fakeSource) AllPurchases() []types.Purchase { return f.purchases }
func (f *fakeSource) AllReturns() []types.Return     { return f.returns }

func crowns(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func item(id int, name string, qty int, price int64) types.LineItem {
	return types.LineItem{ID: id, Name: name, Quantity: qty, Value: crowns(price)}
}

func day(d int) types.Date { return types.NewDate(2025, time.March, d) }

// whiteOrchard has merchant 1 (Hattori), merchant 2 (Tomira), hunter 1
// (Geralt) and hunter 3 (Lambert).
func whiteOrchard() *fakeSource {
	return &fakeSource{
		merchants: []types.Merchant{{ID: 1, Name: "Hattori"}, {ID: 2, Name: "Tomira"}},
		hunters:   []types.Hunter{{ID: 1, Name: "Geralt of Rivia"}, {ID: 3, Name: "Lambert"}},
		purchases: []types.Purchase{
			{ID: 1, Date: day(1), MerchantID: 1, ItemsPurchased: []types.LineItem{item(1, "Silver Sword", 2, 250)}, TotalAmount: crowns(500)},
			{ID: 2, Date: day(2), MerchantID: 2, ItemsPurchased: []types.LineItem{item(2, "Swallow Potion", 5, 50), item(1, "Silver Sword", 1, 250)}, TotalAmount: crowns(500)},
			{ID: 3, Date: day(3), MerchantID: 1, ItemsPurchased: []types.LineItem{item(3, "Crossbow", 1, 90)}, TotalAmount: crowns(90)},
		},
		sales: []types.Sale{
			{ID: 1, Date: day(4), HunterID: 1, ItemsSold: []types.LineItem{item(1, "Silver Sword", 1, 250)}, TotalAmount: crowns(250)},
			{ID: 2, Date: day(5), HunterID: 3, ItemsSold: []types.LineItem{item(2, "Swallow Potion", 3, 50)}, TotalAmount: crowns(150)},
			{ID: 3, Date: day(6), HunterID: 1, ItemsSold: []types.LineItem{item(4, "Steel Sword", 3, 120)}, TotalAmount: crowns(360)},
		},
		returns: []types.Return{
			{ID: 1, Date: day(7), CustomerID: 1, ItemsReturned: []types.LineItem{item(1, "Silver Sword", 1, 250)}},
			{ID: 2, Date: day(8), CustomerID: 3, ItemsReturned: []types.LineItem{item(4, "Steel Sword", 1, 120)}},
		},
	}
}

func build(t *testing.T, src Source) *Engine {
	t.Helper()
	e, err := Build(src, nil)
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })
	return e
}

func TestBestSelling(t *testing.T) {
	e := build(t, whiteOrchard())

	r, err := e.BestSelling()
	require.NoError(t, err)
	assert.Equal(t, Ranking{GoodID: 2, Name: "Swallow Potion", Units: 5}, r)
}

func TestMostInDemandTieGoesToLowestID(t *testing.T) {
	e := build(t, whiteOrchard())

	// Swallow Potion (id 2) and Steel Sword (id 4) both sold 3 units.
	r, err := e.MostInDemand()
	require.NoError(t, err)
	assert.Equal(t, Ranking{GoodID: 2, Name: "Swallow Potion", Units: 3}, r)
}

func TestRankingNameComesFromFirstSnapshot(t *testing.T) {
	src := &fakeSource{
		sales: []types.Sale{
			{ID: 1, ItemsSold: []types.LineItem{item(7, "Witcher Medallion", 1, 100)}},
			{ID: 2, ItemsSold: []types.LineItem{item(7, "Wolf Medallion", 2, 100)}},
		},
	}
	e := build(t, src)

	r, err := e.MostInDemand()
	require.NoError(t, err)
	assert.Equal(t, Ranking{GoodID: 7, Name: "Witcher Medallion", Units: 3}, r)
}

func TestReportsWithoutData(t *testing.T) {
	e := build(t, &fakeSource{})

	_, err := e.BestSelling()
	assert.ErrorIs(t, err, ErrNoData)
	_, err = e.MostInDemand()
	assert.ErrorIs(t, err, ErrNoData)
}

func TestClientHistoryForMerchantAndHunter(t *testing.T) {
	e := build(t, whiteOrchard())

	// Id 1 is both Hattori and Geralt.
	history, err := e.ClientHistory(1)
	require.NoError(t, err)

	type row struct {
		kind string
		id   int
	}
	var got []row
	for _, h := range history {
		got = append(got, row{h.Kind, h.ID})
	}
	assert.Equal(t, []row{
		{KindPurchase, 1}, {KindPurchase, 3},
		{KindReturn, 1},
		{KindSale, 1}, {KindSale, 3},
	}, got)

	first := history[0]
	assert.Equal(t, "2025-03-01", first.Date.String())
	require.NotNil(t, first.Total)
	assert.True(t, first.Total.Equal(crowns(500)))
	assert.Equal(t, []string{"Silver Sword"}, first.Items)

	ret := history[2]
	assert.Nil(t, ret.Total, "returns carry no total")
}

func TestClientHistoryMerchantOnly(t *testing.T) {
	e := build(t, whiteOrchard())

	history, err := e.ClientHistory(2)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, KindPurchase, history[0].Kind)
	assert.Equal(t, []string{"Swallow Potion", "Silver Sword"}, history[0].Items, "items keep their order")
}

func TestClientHistoryHunterWithReturn(t *testing.T) {
	e := build(t, whiteOrchard())

	history, err := e.ClientHistory(3)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, KindReturn, history[0].Kind)
	assert.Equal(t, KindSale, history[1].Kind)
	assert.True(t, history[1].Total.Equal(crowns(150)))
}

func TestClientHistoryKeepsFreeTextDates(t *testing.T) {
	src := whiteOrchard()
	src.hunters = append(src.hunters, types.Hunter{ID: 9, Name: "Eskel"})
	src.sales = append(src.sales, types.Sale{
		ID: 10, Date: types.DateFromText("20250321"), HunterID: 9,
		ItemsSold: []types.LineItem{item(1, "Silver Sword", 1, 250)}, TotalAmount: crowns(250),
	})
	e := build(t, src)

	history, err := e.ClientHistory(9)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "20250321", history[0].Date.String())
}

func TestClientHistoryUnknownClient(t *testing.T) {
	e := build(t, whiteOrchard())

	_, err := e.ClientHistory(99)
	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.Contains(t, err.Error(), "99")
}

func TestClientHistoryKnownClientWithoutTransactions(t *testing.T) {
	src := whiteOrchard()
	src.hunters = append(src.hunters, types.Hunter{ID: 9, Name: "Eskel"})
	e := build(t, src)

	history, err := e.ClientHistory(9)
	require.NoError(t, err)
	assert.Empty(t, history)
}
