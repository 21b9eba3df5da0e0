package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/types"
)

// MaverickV2Encoder encodes a hop through a Maverick V2 pool. Component.ID
// is emitted as raw bytes, not validated as a fixed-size address.
type MaverickV2Encoder struct {
	executor common.Address
}

func NewMaverickV2Encoder(executor common.Address, _ Config) (*MaverickV2Encoder, error) {
	return &MaverickV2Encoder{executor: executor}, nil
}

func (e *MaverickV2Encoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs token_in | component_id(variable) | receiver | transfer_type.
func (e *MaverickV2Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	out := make([]byte, 0, 20+len(swap.Component.ID)+20+1)
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.Component.ID...)
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, byte(ectx.TransferType))
	return out, nil
}
