// Package types defines the trading-post entities (goods, merchants, hunters
// and the sale, purchase and return logs), their field-update structures,
// the store configuration and the sentinel errors shared by every package.
//
// The types carry no I/O. Persistence lives in internal/jsonstore and the
// stock rules that accompany transactions live in internal/ledger.
package types
