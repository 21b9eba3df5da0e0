package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
)

// ERC4626Encoder encodes a deposit into or redemption from an ERC-4626
// vault. Component.ID is emitted as raw bytes in the wire format but must
// also parse as a 20-byte vault address, since approval_needed is probed
// against it for deposits.
type ERC4626Encoder struct {
	executor    common.Address
	approvalMgr approvals.Manager
}

func NewERC4626Encoder(executor common.Address, _ Config, approvalMgr approvals.Manager) (*ERC4626Encoder, error) {
	return &ERC4626Encoder{executor: executor, approvalMgr: approvalMgr}, nil
}

func (e *ERC4626Encoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs token_in | component_id(variable) | receiver | transfer_type | approval_needed.
func (e *ERC4626Encoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	poolAddress, err := packing.BytesToAddress(swap.Component.ID)
	if err != nil {
		return nil, err
	}

	approvalNeeded := false
	if ectx.RouterAddress != nil && !ectx.HistoricalTrade && swap.TokenOut == poolAddress {
		needed, err := e.approvalMgr.ApprovalNeeded(ctx, swap.TokenIn, *ectx.RouterAddress, poolAddress)
		if err != nil {
			return nil, err
		}
		approvalNeeded = needed
	}

	out := make([]byte, 0, 20+len(swap.Component.ID)+20+1+1)
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.Component.ID...)
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, byte(ectx.TransferType))
	out = append(out, packing.PackBool(approvalNeeded))
	return out, nil
}
