// Package coinfolio keeps track of crypto holdings and values them at static
// unit prices. It is local-first: the whole portfolio is a single JSON value
// stored in one slot of a key-value backend (a file, SQLite, Redis or memory).
//
// The building blocks are:
//   - Catalog: the immutable list of assets that can be held, with their unit price.
//   - Store: the holdings, at most one per symbol. Adding a symbol already
//     held sums the amounts. Every change is written through to the slot.
//   - Form and Entry: validation of user input before it reaches the Store.
//   - Valuation: per holding value, count and total value.
//
// This package is the foundation of the `coinfolio` command-line tool.
package coinfolio
