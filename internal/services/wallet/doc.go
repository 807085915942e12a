// Package wallet implements the wallet ledger store: wallet lifecycle and
// the atomic balance mutation primitives (credit, debit, reserve, settle,
// release) every money-movement operation is built from.
//
// Each primitive runs in its own database transaction and locks the
// wallet row, so concurrent mutations of the same wallet serialize.
// Mutations on different wallets are independent; a transfer's two legs
// are NOT one atomic unit, which is why the orchestrator carries explicit
// compensation logic.
package wallet
