package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
)

// fluidNativeSentinel is the address Fluid V1 pools use internally to
// represent the native asset, distinct from the all-zero chain sentinel.
var fluidNativeSentinel = common.HexToAddress("0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE")

// FluidV1Encoder encodes a hop through a Fluid V1 dex.
type FluidV1Encoder struct {
	executor    common.Address
	nativeToken common.Address
}

func NewFluidV1Encoder(executor common.Address, nativeToken common.Address, _ Config) (*FluidV1Encoder, error) {
	return &FluidV1Encoder{executor: executor, nativeToken: nativeToken}, nil
}

func (e *FluidV1Encoder) ExecutorAddress() common.Address { return e.executor }

// coerceNative substitutes Fluid's internal native sentinel for the chain's
// native-token address, used only for the zero_to_one ordering comparison.
func (e *FluidV1Encoder) coerceNative(addr common.Address) common.Address {
	if addr == e.nativeToken {
		return fluidNativeSentinel
	}
	return addr
}

// EncodeSwap packs dex_address | zero_to_one | receiver | transfer_type | is_native_sell.
func (e *FluidV1Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	dex, err := packing.BytesToAddress(swap.Component.ID)
	if err != nil {
		return nil, err
	}
	zeroToOne := packing.ZeroToOne(e.coerceNative(swap.TokenIn), e.coerceNative(swap.TokenOut))
	isNativeSell := swap.TokenIn == e.nativeToken

	out := make([]byte, 0, 20+1+20+1+1)
	out = append(out, dex.Bytes()...)
	out = append(out, packing.PackBool(zeroToOne))
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, byte(ectx.TransferType))
	out = append(out, packing.PackBool(isNativeSell))
	return out, nil
}
