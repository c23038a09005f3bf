// Package statements converts bank statement text into typed, validated
// financial transactions.
//
// A statement arrives as an ordered sequence of page strings, already
// rendered from the original PDF. The pdf subpackage locates the blocks a
// given institution prints (security identification, gross amount, tax and
// fee lines, net booking) and decodes them into the transaction model
// defined here: exact minor-unit Money values, fractional share Quantity,
// tagged Unit sub-amounts, and the AccountTransaction / PortfolioTransaction
// pair joined by BuySellEntry.
//
// Because statements mix currencies, the package also carries the historical
// exchange-rate machinery extraction depends on: per-pair
// ExchangeRateTimeSeries and a term-currency-bound CurrencyConverter with
// exact integer rounding.
//
// Extraction of one document is a pure function of its text and the
// caller-owned security Catalog. All decode, structural and reconciliation
// failures are collected and returned next to the items already produced;
// only programmer-error invariants (cross-currency arithmetic, negative
// share counts) abort a document.
package statements
