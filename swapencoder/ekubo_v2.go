package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// EkuboV2Encoder encodes a hop within an Ekubo v2 swap group. Only the
// first hop in a group carries the transfer/receiver/token_in header.
type EkuboV2Encoder struct {
	executor common.Address
}

func NewEkuboV2Encoder(executor common.Address, _ Config) (*EkuboV2Encoder, error) {
	return &EkuboV2Encoder{executor: executor}, nil
}

func (e *EkuboV2Encoder) ExecutorAddress() common.Address { return e.executor }

func (e *EkuboV2Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	if ectx.ExactOut {
		return nil, tychoerr.InvalidInputf("ekubo_v2: exact out swaps not implemented")
	}

	feeRaw, err := packing.GetStaticAttribute(swap, "fee")
	if err != nil {
		return nil, err
	}
	fee, err := packing.PadToFixedSize(feeRaw, 8)
	if err != nil {
		return nil, err
	}
	tickSpacingRaw, err := packing.GetStaticAttribute(swap, "tick_spacing")
	if err != nil {
		return nil, err
	}
	tickSpacing, err := packing.PadToFixedSize(tickSpacingRaw, 4)
	if err != nil {
		return nil, err
	}
	extensionRaw, err := packing.GetStaticAttribute(swap, "extension")
	if err != nil {
		return nil, err
	}
	extension, err := packing.BytesToAddress(extensionRaw)
	if err != nil {
		return nil, err
	}

	var out []byte
	if ectx.GroupTokenIn == swap.TokenIn {
		out = make([]byte, 0, 1+20+20+20+20+8+4)
		out = append(out, byte(ectx.TransferType))
		out = append(out, ectx.Receiver.Bytes()...)
		out = append(out, swap.TokenIn.Bytes()...)
	}
	out = append(out, swap.TokenOut.Bytes()...)
	out = append(out, extension.Bytes()...)
	out = append(out, fee...)
	out = append(out, tickSpacing...)
	return out, nil
}
