package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// Lido pool/direction wire values. No token or pool address is packed —
// the (pool, direction) pair alone selects the on-chain call.
const (
	lidoPoolStETH  byte = 0
	lidoPoolWstETH byte = 1

	lidoDirStake  byte = 0
	lidoDirWrap   byte = 1
	lidoDirUnwrap byte = 2
)

// LidoEncoder encodes ETH<->stETH<->wstETH conversions through Lido.
type LidoEncoder struct {
	executor    common.Address
	stETH       common.Address
	wstETH      common.Address
	nativeToken common.Address
	approvalMgr approvals.Manager
}

// NewLidoEncoder requires config["st_eth_address"] and config["wst_eth_address"].
func NewLidoEncoder(executor common.Address, config Config, nativeToken common.Address, approvalMgr approvals.Manager) (*LidoEncoder, error) {
	if config == nil {
		return nil, tychoerr.Fatalf("lido: config is empty")
	}
	stETHRaw, ok := config.get("st_eth_address")
	if !ok {
		return nil, tychoerr.Fatalf("lido: missing st_eth_address in config")
	}
	wstETHRaw, ok := config.get("wst_eth_address")
	if !ok {
		return nil, tychoerr.Fatalf("lido: missing wst_eth_address in config")
	}
	return &LidoEncoder{
		executor:    executor,
		stETH:       common.HexToAddress(stETHRaw),
		wstETH:      common.HexToAddress(wstETHRaw),
		nativeToken: nativeToken,
		approvalMgr: approvalMgr,
	}, nil
}

func (e *LidoEncoder) ExecutorAddress() common.Address { return e.executor }

// EncodeSwap packs receiver | transfer_type | pool | direction | approval_needed.
func (e *LidoEncoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	var pool, direction byte
	var approvalNeeded bool

	switch {
	case swap.TokenIn == e.nativeToken && swap.TokenOut == e.stETH:
		pool, direction = lidoPoolStETH, lidoDirStake

	case swap.TokenIn == e.stETH && swap.TokenOut == e.wstETH:
		pool, direction = lidoPoolWstETH, lidoDirWrap
		if ectx.RouterAddress != nil && !ectx.HistoricalTrade {
			needed, err := e.approvalMgr.ApprovalNeeded(ctx, e.stETH, *ectx.RouterAddress, e.wstETH)
			if err != nil {
				return nil, err
			}
			approvalNeeded = needed
		} else {
			approvalNeeded = true
		}

	case swap.TokenIn == e.wstETH && swap.TokenOut == e.stETH:
		pool, direction = lidoPoolWstETH, lidoDirUnwrap

	default:
		return nil, tychoerr.InvalidInputf("lido: combination not allowed")
	}

	out := make([]byte, 0, 20+1+1+1+1)
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, byte(ectx.TransferType), pool, direction)
	out = append(out, packing.PackBool(approvalNeeded))
	return out, nil
}
