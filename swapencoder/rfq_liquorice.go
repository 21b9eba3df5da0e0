package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// LiquoriceEncoder encodes a swap settled through Liquorice's RFQ system.
type LiquoriceEncoder struct {
	executor       common.Address
	balanceManager common.Address
	approvalMgr    approvals.Manager
}

// NewLiquoriceEncoder requires config["balance_manager_address"].
func NewLiquoriceEncoder(executor common.Address, config Config, approvalMgr approvals.Manager) (*LiquoriceEncoder, error) {
	raw, ok := config.get("balance_manager_address")
	if !ok {
		return nil, tychoerr.Fatalf("liquorice: missing balance_manager_address in config")
	}
	return &LiquoriceEncoder{
		executor:       executor,
		balanceManager: common.HexToAddress(raw),
		approvalMgr:    approvalMgr,
	}, nil
}

func (e *LiquoriceEncoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs
// token_in | token_out | transfer_type | partial_fill_offset | original_base_token_amount |
// min_base_token_amount | approval_needed | receiver | liquorice_calldata.
func (e *LiquoriceEncoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	if ectx.RouterAddress == nil {
		return nil, tychoerr.Fatalf("liquorice: the router address is needed to perform a liquorice swap")
	}
	if swap.ProtocolState == nil {
		return nil, tychoerr.Fatalf("liquorice: protocol state is required")
	}
	if swap.EstimatedAmountIn == nil {
		return nil, tychoerr.Fatalf("liquorice: estimated amount in is mandatory")
	}

	quote, err := swap.ProtocolState.RequestSignedQuote(types.QuoteParams{
		TokenIn:           swap.TokenIn,
		TokenOut:          swap.TokenOut,
		EstimatedAmountIn: swap.EstimatedAmountIn,
		Receiver:          ectx.Receiver,
	})
	if err != nil {
		return nil, tychoerr.WrapRecoverable(err, "liquorice: failed to request signed quote")
	}

	calldata, ok := quote.Attribute("calldata")
	if !ok {
		return nil, tychoerr.Fatalf("liquorice: quote must have a calldata attribute")
	}
	baseTokenAmount, ok := quote.Attribute("base_token_amount")
	if !ok {
		return nil, tychoerr.Fatalf("liquorice: quote must have a base_token_amount attribute")
	}
	minBaseTokenAmount, ok := quote.Attribute("min_base_token_amount")
	if !ok {
		minBaseTokenAmount = baseTokenAmount
	}
	partialFillOffset, ok := quote.Attribute("partial_fill_offset")
	if !ok {
		partialFillOffset = make([]byte, 4)
	}

	partialFillOffsetPadded, err := packing.PadToFixedSize(partialFillOffset, 4)
	if err != nil {
		return nil, err
	}
	baseTokenAmountPadded, err := packing.PadToFixedSize(baseTokenAmount, 32)
	if err != nil {
		return nil, err
	}
	minBaseTokenAmountPadded, err := packing.PadToFixedSize(minBaseTokenAmount, 32)
	if err != nil {
		return nil, err
	}

	approvalNeeded, err := e.approvalMgr.ApprovalNeeded(ctx, swap.TokenIn, *ectx.RouterAddress, e.balanceManager)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 20+20+1+4+32+32+1+20+len(calldata))
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.TokenOut.Bytes()...)
	out = append(out, byte(ectx.TransferType))
	out = append(out, partialFillOffsetPadded...)
	out = append(out, baseTokenAmountPadded...)
	out = append(out, minBaseTokenAmountPadded...)
	out = append(out, packing.PackBool(approvalNeeded))
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, calldata...)
	return out, nil
}
