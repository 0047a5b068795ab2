package types

// Collection names. They double as the top-level keys of the persisted
// document and as the keys of its id sequences.
const (
	GoodsCollection     = "goods"
	MerchantsCollection = "merchants"
	HuntersCollection   = "hunters"
	SalesCollection     = "sales"
	PurchasesCollection = "purchases"
	ReturnsCollection   = "returns"
)

// CollectionNames lists all collections in document order.
var CollectionNames = []string{
	GoodsCollection,
	MerchantsCollection,
	HuntersCollection,
	SalesCollection,
	PurchasesCollection,
	ReturnsCollection,
}
