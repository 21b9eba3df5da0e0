package ioschema

import (
	"encoding/json"
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/tycho-go/router-encoding/types"
)

// EncodedSolution is the outbound JSON shape described in spec.md §6.
type EncodedSolution struct {
	Swaps             string `json:"swaps"`
	InteractingWith   string `json:"interacting_with"`
	FunctionSignature string `json:"function_signature"`
	NTokens           string `json:"n_tokens"`
	// Permit carries the Permit2 signature as 0x-hex when the encoder was
	// configured with TransferFromPermit2, "" otherwise. The PermitSingle
	// fields themselves (token, amount, expiration, nonce, spender,
	// sigDeadline) are not re-serialized here: the caller already supplied
	// token/amount in the request and the router reconstructs the rest
	// deterministically, so only the opaque signature need round-trip.
	Permit string `json:"permit"`
}

// EncodeEncodedSolution converts a types.EncodedSolution to its JSON shape.
func EncodeEncodedSolution(es types.EncodedSolution) EncodedSolution {
	permit := ""
	if es.Permit != nil && len(es.Signature) > 0 {
		permit = hexutil.Encode(es.Signature)
	}
	return EncodedSolution{
		Swaps:             hexutil.Encode(es.Swaps),
		InteractingWith:   es.InteractingWith.Hex(),
		FunctionSignature: es.FunctionSignature,
		NTokens:           strconv.FormatUint(es.NTokens, 10),
		Permit:            permit,
	}
}

// MarshalEncodedSolutions renders a slice of EncodedSolutions as the JSON
// array cmd/tycho-encode writes to stdout.
func MarshalEncodedSolutions(solutions []types.EncodedSolution) ([]byte, error) {
	out := make([]EncodedSolution, len(solutions))
	for i, es := range solutions {
		out[i] = EncodeEncodedSolution(es)
	}
	return json.MarshalIndent(out, "", "  ")
}

// Transaction is the outbound JSON shape of a types.Transaction.
type Transaction struct {
	To    string `json:"to"`
	Value string `json:"value"`
	Data  string `json:"data"`
}

func EncodeTransaction(tx types.Transaction) Transaction {
	value := "0"
	if tx.Value != nil {
		value = tx.Value.String()
	}
	return Transaction{
		To:    tx.To.Hex(),
		Value: value,
		Data:  hexutil.Encode(tx.Data),
	}
}

// MarshalTransactions renders a slice of Transactions as JSON.
func MarshalTransactions(txs []types.Transaction) ([]byte, error) {
	out := make([]Transaction, len(txs))
	for i, tx := range txs {
		out[i] = EncodeTransaction(tx)
	}
	return json.MarshalIndent(out, "", "  ")
}
