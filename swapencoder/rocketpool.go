package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// ethereumChainID is the only chain Rocket Pool is deployed on.
const ethereumChainID = 1

// RocketpoolEncoder encodes ETH<->rETH deposits and burns.
type RocketpoolEncoder struct {
	executor    common.Address
	nativeToken common.Address
}

// NewRocketpoolEncoder rejects any chainID other than Ethereum mainnet.
func NewRocketpoolEncoder(executor common.Address, nativeToken common.Address, chainID int64) (*RocketpoolEncoder, error) {
	if chainID != ethereumChainID {
		return nil, tychoerr.Fatalf("rocketpool: swaps are only supported on Ethereum")
	}
	return &RocketpoolEncoder{executor: executor, nativeToken: nativeToken}, nil
}

func (e *RocketpoolEncoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs is_deposit | transfer_type | receiver.
func (e *RocketpoolEncoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	isDeposit := swap.TokenIn == e.nativeToken

	out := make([]byte, 0, 1+1+20)
	out = append(out, packing.PackBool(isDeposit))
	out = append(out, byte(ectx.TransferType))
	out = append(out, ectx.Receiver.Bytes()...)
	return out, nil
}
