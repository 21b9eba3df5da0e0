package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// hashflowQuoteFields is the fixed field order the Hashflow executor
// expects appended after the packed header; each field's raw quote bytes
// are concatenated verbatim in this order.
var hashflowQuoteFields = []string{
	"pool", "external_account", "trader", "base_token", "quote_token",
	"base_token_amount", "quote_token_amount", "quote_expiry", "nonce",
	"tx_id", "signature",
}

// HashflowEncoder encodes a swap settled through Hashflow's RFQ system.
type HashflowEncoder struct {
	executor     common.Address
	hashflowRouter common.Address
	nativeToken  common.Address
	approvalMgr  approvals.Manager
}

// NewHashflowEncoder requires config["hashflow_router_address"].
func NewHashflowEncoder(executor common.Address, config Config, nativeToken common.Address, approvalMgr approvals.Manager) (*HashflowEncoder, error) {
	raw, ok := config.get("hashflow_router_address")
	if !ok {
		return nil, tychoerr.Fatalf("hashflow: missing hashflow_router_address in config")
	}
	return &HashflowEncoder{
		executor:       executor,
		hashflowRouter: common.HexToAddress(raw),
		nativeToken:    nativeToken,
		approvalMgr:    approvalMgr,
	}, nil
}

func (e *HashflowEncoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs transfer_type | approval_needed | hashflow_calldata.
func (e *HashflowEncoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	if ectx.RouterAddress == nil {
		return nil, tychoerr.Fatalf("hashflow: the router address is needed to perform a hashflow swap")
	}

	approvalNeeded := false
	if swap.TokenIn != e.nativeToken {
		needed, err := e.approvalMgr.ApprovalNeeded(ctx, swap.TokenIn, *ectx.RouterAddress, e.hashflowRouter)
		if err != nil {
			return nil, err
		}
		approvalNeeded = needed
	}

	if swap.ProtocolState == nil {
		return nil, tychoerr.Fatalf("hashflow: protocol state is required")
	}
	if swap.EstimatedAmountIn == nil {
		return nil, tychoerr.Fatalf("hashflow: estimated amount in is mandatory")
	}

	quote, err := swap.ProtocolState.RequestSignedQuote(types.QuoteParams{
		TokenIn:           swap.TokenIn,
		TokenOut:          swap.TokenOut,
		EstimatedAmountIn: swap.EstimatedAmountIn,
		Receiver:          ectx.Receiver,
	})
	if err != nil {
		return nil, tychoerr.WrapRecoverable(err, "hashflow: failed to request signed quote")
	}

	var calldata []byte
	for _, field := range hashflowQuoteFields {
		v, ok := quote.Attribute(field)
		if !ok {
			return nil, tychoerr.Fatalf("hashflow: quote must have a %s attribute", field)
		}
		calldata = append(calldata, v...)
	}

	out := make([]byte, 0, 1+1+len(calldata))
	out = append(out, byte(ectx.TransferType))
	out = append(out, packing.PackBool(approvalNeeded))
	out = append(out, calldata...)
	return out, nil
}
