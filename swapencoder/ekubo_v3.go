package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// EkuboV3Encoder mirrors EkuboV2Encoder but reads a 4-byte pool_type_config
// attribute in place of v2's tick_spacing.
type EkuboV3Encoder struct {
	executor common.Address
}

func NewEkuboV3Encoder(executor common.Address, _ Config) (*EkuboV3Encoder, error) {
	return &EkuboV3Encoder{executor: executor}, nil
}

func (e *EkuboV3Encoder) ExecutorAddress() common.Address { return e.executor }

func (e *EkuboV3Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	if ectx.ExactOut {
		return nil, tychoerr.InvalidInputf("ekubo_v3: exact out swaps not implemented")
	}

	feeRaw, err := packing.GetStaticAttribute(swap, "fee")
	if err != nil {
		return nil, err
	}
	fee, err := packing.PadToFixedSize(feeRaw, 8)
	if err != nil {
		return nil, err
	}
	poolTypeConfigRaw, err := packing.GetStaticAttribute(swap, "pool_type_config")
	if err != nil {
		return nil, err
	}
	poolTypeConfig, err := packing.PadToFixedSize(poolTypeConfigRaw, 4)
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
	out = append(out, poolTypeConfig...)
	return out, nil
}
