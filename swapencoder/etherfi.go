package swapencoder

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// Ether.fi deployment addresses, identical on every chain it supports.
var (
	etherfiEETH              = common.HexToAddress("0x35fA164735182de50811E8e2E824cFb9B6118ac2")
	etherfiWEETH             = common.HexToAddress("0xCd5fE23C85820F7B72D0926FC9b05b43E359b7ee")
	etherfiRedemptionManager = common.HexToAddress("0xDadEf1fFBFeaAB4f68A9fD181395F68b4e4E7Ae0")
)

const (
	etherfiDirEethToEth  byte = 0
	etherfiDirEthToEeth  byte = 1
	etherfiDirEethToWeeth byte = 2
	etherfiDirWeethToEeth byte = 3
)

// EtherfiEncoder encodes eETH<->ETH and eETH<->weETH conversions. No pool
// or token address is packed: direction alone selects the on-chain call.
type EtherfiEncoder struct {
	executor    common.Address
	nativeToken common.Address
	approvalMgr approvals.Manager
}

func NewEtherfiEncoder(executor common.Address, nativeToken common.Address, approvalMgr approvals.Manager) (*EtherfiEncoder, error) {
	return &EtherfiEncoder{executor: executor, nativeToken: nativeToken, approvalMgr: approvalMgr}, nil
}

func (e *EtherfiEncoder) ExecutorAddress() common.Address { return e.executor }

// approvalNeeded defaults to true, the conservative choice, unless a
// router is present and the trade is live, in which case it probes.
func (e *EtherfiEncoder) approvalNeeded(ctx context.Context, token, spender common.Address, ectx types.EncodingContext) (bool, error) {
	if ectx.RouterAddress == nil || ectx.HistoricalTrade {
		return true, nil
	}
	return e.approvalMgr.ApprovalNeeded(ctx, token, *ectx.RouterAddress, spender)
}

// EncodeSwap packs receiver | transfer_type | direction | approval_needed.
func (e *EtherfiEncoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	var direction byte
	var approvalNeeded bool
	var err error

	switch {
	case swap.TokenIn == etherfiEETH && swap.TokenOut == e.nativeToken:
		direction = etherfiDirEethToEth
		approvalNeeded, err = e.approvalNeeded(ctx, etherfiEETH, etherfiRedemptionManager, ectx)
	case swap.TokenIn == e.nativeToken && swap.TokenOut == etherfiEETH:
		direction = etherfiDirEthToEeth
		approvalNeeded = false
	case swap.TokenIn == etherfiEETH && swap.TokenOut == etherfiWEETH:
		direction = etherfiDirEethToWeeth
		approvalNeeded, err = e.approvalNeeded(ctx, etherfiEETH, etherfiWEETH, ectx)
	case swap.TokenIn == etherfiWEETH && swap.TokenOut == etherfiEETH:
		direction = etherfiDirWeethToEeth
		approvalNeeded = false
	default:
		return nil, tychoerr.InvalidInputf("etherfi: combination not allowed")
	}
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 20+1+1+1)
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, byte(ectx.TransferType), direction)
	out = append(out, packing.PackBool(approvalNeeded))
	return out, nil
}
