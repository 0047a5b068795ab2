package jsonstore

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/tradepost/pkg/types"
)

// document is the persisted shape: six collections plus the last id issued
// per collection. Unknown top-level keys are ignored on load.
type document struct {
	Goods     []types.Good     `json:"goods"`
	Merchants []types.Merchant `json:"merchants"`
	Hunters   []types.Hunter   `json:"hunters"`
	Sales     []types.Sale     `json:"sales"`
	Purchases []types.Purchase `json:"purchases"`
	Returns   []types.Return   `json:"returns"`
	Sequences map[string]int   `json:"sequences"`
}

func newDocument() *document {
	d := &document{}
	d.normalize()
	return d
}

// decodeDocument parses data and checks that it is a JSON object whose
// collections have the expected element shapes.
func decodeDocument(data []byte) (*document, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("%w: top level must be an object", types.ErrCorruptDocument)
	}
	var d document
	if err := json.Unmarshal(trimmed, &d); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptDocument, err)
	}
	d.normalize()
	return &d, nil
}

// normalize replaces null collections with empty ones and makes sure every
// sequence is at least the largest id already present, so documents
// written without sequences never hand out an id that is still in use.
func (d *document) normalize() {
	if d.Goods == nil {
		d.Goods = []types.Good{}
	}
	if d.Merchants == nil {
		d.Merchants = []types.Merchant{}
	}
	if d.Hunters == nil {
		d.Hunters = []types.Hunter{}
	}
	if d.Sales == nil {
		d.Sales = []types.Sale{}
	}
	if d.Purchases == nil {
		d.Purchases = []types.Purchase{}
	}
	if d.Returns == nil {
		d.Returns = []types.Return{}
	}
	if d.Sequences == nil {
		d.Sequences = make(map[string]int, len(types.CollectionNames))
	}

	floor := map[string]int{
		types.GoodsCollection:     maxKey(d.Goods),
		types.MerchantsCollection: maxKey(d.Merchants),
		types.HuntersCollection:   maxKey(d.Hunters),
		types.SalesCollection:     maxKey(d.Sales),
		types.PurchasesCollection: maxKey(d.Purchases),
		types.ReturnsCollection:   maxKey(d.Returns),
	}
	for name, top := range floor {
		if d.Sequences[name] < top {
			d.Sequences[name] = top
		}
	}
}

// nextID advances and returns the sequence for collection.
func (d *document) nextID(collection string) int {
	d.Sequences[collection]++
	return d.Sequences[collection]
}

func (d *document) encode() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// unparsedDates returns how many transactions carry a date kept as text.
func (d *document) unparsedDates() int {
	n := 0
	for _, s := range d.Sales {
		if s.Date.Unparsed() != "" {
			n++
		}
	}
	for _, p := range d.Purchases {
		if p.Date.Unparsed() != "" {
			n++
		}
	}
	for _, r := range d.Returns {
		if r.Date.Unparsed() != "" {
			n++
		}
	}
	return n
}

func (d *document) counts() map[string]int {
	return map[string]int{
		types.GoodsCollection:     len(d.Goods),
		types.MerchantsCollection: len(d.Merchants),
		types.HuntersCollection:   len(d.Hunters),
		types.SalesCollection:     len(d.Sales),
		types.PurchasesCollection: len(d.Purchases),
		types.ReturnsCollection:   len(d.Returns),
	}
}
