package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// BalancerV2Encoder encodes a hop through a Balancer V2 vault pool.
// Component.ID is the pool's full bytes32 identifier and is emitted as-is,
// not validated as a 20-byte address.
type BalancerV2Encoder struct {
	executor    common.Address
	vault       common.Address
	approvalMgr approvals.Manager
}

// NewBalancerV2Encoder requires config["vault_address"].
func NewBalancerV2Encoder(executor common.Address, config Config, approvalMgr approvals.Manager) (*BalancerV2Encoder, error) {
	raw, ok := config.get("vault_address")
	if !ok {
		return nil, tychoerr.Fatalf("balancer_v2: missing vault_address in config")
	}
	return &BalancerV2Encoder{
		executor:    executor,
		vault:       common.HexToAddress(raw),
		approvalMgr: approvalMgr,
	}, nil
}

func (e *BalancerV2Encoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs
// token_in | token_out | component_id(variable) | receiver | approval_needed | transfer_type.
func (e *BalancerV2Encoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	approvalNeeded := true
	if ectx.RouterAddress != nil && !ectx.HistoricalTrade {
		needed, err := e.approvalMgr.ApprovalNeeded(ctx, swap.TokenIn, *ectx.RouterAddress, e.vault)
		if err != nil {
			return nil, err
		}
		approvalNeeded = needed
	}

	out := make([]byte, 0, 20+20+len(swap.Component.ID)+20+1+1)
	out = append(out, swap.TokenIn.Bytes()...)
	out = append(out, swap.TokenOut.Bytes()...)
	out = append(out, swap.Component.ID...)
	out = append(out, ectx.Receiver.Bytes()...)
	if approvalNeeded {
		out = append(out, 1)
	} else {
		out = append(out, 0)
	}
	out = append(out, byte(ectx.TransferType))
	return out, nil
}
