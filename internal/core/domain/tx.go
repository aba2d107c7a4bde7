package domain

import "encoding/json"

// UnsignedTx is a transfer built by the ledger node, ready to be
// signed. TxID is the hex sha256 of the raw transaction data; Payload
// keeps the node's full transaction document so that broadcast sends
// back exactly what was built.
type UnsignedTx struct {
	TxID       string
	RawDataHex string
	Payload    json.RawMessage
}

// SignedTx is an UnsignedTx with the service's signature attached.
type SignedTx struct {
	TxID         string
	Payload      json.RawMessage
	SignatureHex string
}

// BroadcastResult is the ledger's answer to a transaction submission.
type BroadcastResult struct {
	Accepted bool
	TxID     string
	Code     string
	Message  string
}
