package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
)

// UniswapV2Encoder encodes a swap against any constant-product pair sharing
// Uniswap V2's pool layout: Uniswap V2 itself, SushiSwap V2, PancakeSwap V2.
type UniswapV2Encoder struct {
	executor common.Address
}

// NewUniswapV2Encoder builds an encoder with no protocol-specific config.
func NewUniswapV2Encoder(executor common.Address, _ Config) (*UniswapV2Encoder, error) {
	return &UniswapV2Encoder{executor: executor}, nil
}

func (e *UniswapV2Encoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs token_in | component_id | receiver | zero_to_one | transfer_type.
func (e *UniswapV2Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	componentID, err := packing.BytesToAddress(swap.Component.ID)
	if err != nil {
		return nil, err
	}
	zeroToOne := packing.ZeroToOne(swap.TokenIn, swap.TokenOut)

	out := make([]byte, 0, 20+20+20+1+1)
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, componentID.Bytes()...)
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, packing.PackBool(zeroToOne))
	out = append(out, byte(ectx.TransferType))
	return out, nil
}
