package reports

// Schema DDL for the report database. Dates are stored as YYYY-MM-DD text
// and money as decimal text so nothing is lost to floating point.
const (
	createParties = `CREATE TABLE parties (
    party_id INTEGER NOT NULL,
    kind TEXT NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (kind, party_id)
);`

	createTransactions = `CREATE TABLE transactions (
    txn_seq INTEGER PRIMARY KEY,
    kind TEXT NOT NULL,
    txn_id INTEGER NOT NULL,
    party_id INTEGER NOT NULL,
    txn_date TEXT NOT NULL,
    total TEXT
);`

	createLineItems = `CREATE TABLE line_items (
    item_seq INTEGER PRIMARY KEY,
    txn_seq INTEGER NOT NULL,
    good_id INTEGER NOT NULL,
    name TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    price TEXT NOT NULL,
    FOREIGN KEY (txn_seq) REFERENCES transactions(txn_seq)
);`
)

const (
	idxTransactionsKindParty = `CREATE INDEX idx_transactions_kind_party ON transactions(kind, party_id);`
	idxLineItemsTxn          = `CREATE INDEX idx_line_items_txn ON line_items(txn_seq);`
	idxLineItemsGood         = `CREATE INDEX idx_line_items_good ON line_items(good_id);`
)

// schemaDDL lists the CREATE statements in dependency order.
var schemaDDL = []string{
	createParties,
	createTransactions,
	createLineItems,
	idxTransactionsKindParty,
	idxLineItemsTxn,
	idxLineItemsGood,
}

// Transaction and party kinds as stored in the kind columns.
const (
	kindPurchase = "purchase"
	kindReturn   = "return"
	kindSale     = "sale"

	kindMerchant = "merchant"
	kindHunter   = "hunter"
)
