package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
)

// BalancerV3Encoder encodes a hop through a Balancer V3 pool. Unlike
// Balancer V2, Component.ID here is a 20-byte pool address.
type BalancerV3Encoder struct {
	executor common.Address
}

func NewBalancerV3Encoder(executor common.Address, _ Config) (*BalancerV3Encoder, error) {
	return &BalancerV3Encoder{executor: executor}, nil
}

func (e *BalancerV3Encoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs token_in | token_out | pool | transfer_type | receiver.
func (e *BalancerV3Encoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	pool, err := packing.BytesToAddress(swap.Component.ID)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 20+20+20+1+20)
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.TokenOut.Bytes()...)
	out = append(out, pool.Bytes()...)
	out = append(out, byte(ectx.TransferType))
	out = append(out, ectx.Receiver.Bytes()...)
	return out, nil
}
