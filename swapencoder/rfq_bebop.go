package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// BebopEncoder encodes a swap settled through the Bebop PMM RFQ system: a
// quote is fetched off-chain via swap.ProtocolState and the settlement
// contract's calldata is appended verbatim to a small packed header.
type BebopEncoder struct {
	executor         common.Address
	settlement       common.Address
	nativeToken      common.Address
	nativeTokenBebop common.Address
	approvalMgr      approvals.Manager
}

// NewBebopEncoder requires config["bebop_settlement_address"] and
// config["native_token_address"] — the sentinel address Bebop quotes use in
// place of the zero address for native ETH.
func NewBebopEncoder(executor common.Address, config Config, nativeToken common.Address, approvalMgr approvals.Manager) (*BebopEncoder, error) {
	settlementRaw, ok := config.get("bebop_settlement_address")
	if !ok {
		return nil, tychoerr.Fatalf("bebop: missing bebop_settlement_address in config")
	}
	nativeBebopRaw, ok := config.get("native_token_address")
	if !ok {
		return nil, tychoerr.Fatalf("bebop: missing native_token_address in config")
	}
	return &BebopEncoder{
		executor:         executor,
		settlement:       common.HexToAddress(settlementRaw),
		nativeToken:      nativeToken,
		nativeTokenBebop: common.HexToAddress(nativeBebopRaw),
		approvalMgr:      approvalMgr,
	}, nil
}

func (e *BebopEncoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs
// token_in | token_out | transfer_type | partial_fill_offset | original_filled_taker_amount |
// approval_needed | receiver | bebop_calldata.
func (e *BebopEncoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	if ectx.RouterAddress == nil {
		return nil, tychoerr.Fatalf("bebop: the router address is needed to perform a bebop swap")
	}

	approvalNeeded := false
	if swap.TokenIn != e.nativeToken {
		needed, err := e.approvalMgr.ApprovalNeeded(ctx, swap.TokenIn, *ectx.RouterAddress, e.settlement)
		if err != nil {
			return nil, err
		}
		approvalNeeded = needed
	}

	if swap.ProtocolState == nil {
		return nil, tychoerr.Fatalf("bebop: protocol state is required")
	}
	if swap.EstimatedAmountIn == nil {
		return nil, tychoerr.Fatalf("bebop: estimated amount in is mandatory")
	}

	// Bebop quotes use its own sentinel for native ETH rather than the zero
	// address; substitute it only for the quote request, not the packed
	// header below, which carries the original tokens.
	quoteTokenIn := swap.TokenIn
	if quoteTokenIn == e.nativeToken {
		quoteTokenIn = e.nativeTokenBebop
	}
	quoteTokenOut := swap.TokenOut
	if quoteTokenOut == e.nativeToken {
		quoteTokenOut = e.nativeTokenBebop
	}

	quote, err := swap.ProtocolState.RequestSignedQuote(types.QuoteParams{
		TokenIn:           quoteTokenIn,
		TokenOut:          quoteTokenOut,
		EstimatedAmountIn: swap.EstimatedAmountIn,
		Receiver:          ectx.Receiver,
	})
	if err != nil {
		return nil, tychoerr.WrapRecoverable(err, "bebop: failed to request signed quote")
	}
	calldata, ok := quote.Attribute("calldata")
	if !ok {
		return nil, tychoerr.Fatalf("bebop: quote must have a calldata attribute")
	}
	partialFillOffset, ok := quote.Attribute("partial_fill_offset")
	if !ok || len(partialFillOffset) == 0 {
		return nil, tychoerr.Fatalf("bebop: quote must have a partial_fill_offset attribute")
	}
	amountOut, err := packing.BigUintToU256(quote.AmountOut)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "bebop: invalid quote amount out")
	}

	out := make([]byte, 0, 20+20+1+1+32+1+20+len(calldata))
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.TokenOut.Bytes()...)
	out = append(out, byte(ectx.TransferType))
	out = append(out, partialFillOffset[len(partialFillOffset)-1])
	out = append(out, amountOut...)
	out = append(out, packing.PackBool(approvalNeeded))
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, calldata...)
	return out, nil
}
