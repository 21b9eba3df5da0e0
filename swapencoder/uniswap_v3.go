package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
)

// UniswapV3Encoder encodes a swap against a concentrated-liquidity pool
// sharing Uniswap V3's layout: Uniswap V3 itself and PancakeSwap V3.
type UniswapV3Encoder struct {
	executor common.Address
}

// NewUniswapV3Encoder builds an encoder with no protocol-specific config.
func NewUniswapV3Encoder(executor common.Address, _ Config) (*UniswapV3Encoder, error) {
	return &UniswapV3Encoder{executor: executor}, nil
}

func (e *UniswapV3Encoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs
// token_in | token_out | fee(u24) | receiver | pool_id | zero_to_one | transfer_type.
func (e *UniswapV3Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	poolID, err := packing.BytesToAddress(swap.Component.ID)
	if err != nil {
		return nil, err
	}
	feeRaw, err := packing.GetStaticAttribute(swap, "fee")
	if err != nil {
		return nil, err
	}
	fee, err := packing.PadToFixedSize(feeRaw, 3)
	if err != nil {
		return nil, err
	}
	zeroToOne := packing.ZeroToOne(swap.TokenIn, swap.TokenOut)

	out := make([]byte, 0, 20+20+3+20+20+1+1)
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.TokenOut.Bytes()...)
	out = append(out, fee...)
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, poolID.Bytes()...)
	out = append(out, packing.PackBool(zeroToOne))
	out = append(out, byte(ectx.TransferType))
	return out, nil
}
