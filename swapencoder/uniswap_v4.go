package swapencoder

import (
	"context"
	"encoding/binary"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/angstrom"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/types"
)

// UniswapV4Encoder encodes a hop within a Uniswap V4 swap group. Only the
// first hop of a group emits the group header (group_token_in/out,
// zero_to_one, transfer_type, receiver); later hops emit only their pool
// params, since the executor replays them against the group's running
// delta. When a hop's hook is the Angstrom hook, hook_data is a freshly
// fetched attestation bundle instead of the swap's user-supplied bytes.
type UniswapV4Encoder struct {
	executor      common.Address
	angstromHook  common.Address
	angstromFetch func(context.Context) ([]angstrom.Attestation, error)
}

// NewUniswapV4Encoder builds an encoder. config's "angstrom_hook_address"
// key is optional: Angstrom is not deployed on every chain, so an absent
// key leaves angstromHook at the zero address and no hop can ever match it.
func NewUniswapV4Encoder(executor common.Address, config Config) (*UniswapV4Encoder, error) {
	var hook common.Address
	if raw, ok := config.get("angstrom_hook_address"); ok {
		hook = common.HexToAddress(raw)
	}
	return &UniswapV4Encoder{
		executor:     executor,
		angstromHook: hook,
		angstromFetch: func(ctx context.Context) ([]angstrom.Attestation, error) {
			client, err := angstrom.NewClientFromEnv()
			if err != nil {
				return nil, err
			}
			return client.FetchAttestations(ctx)
		},
	}, nil
}

func (e *UniswapV4Encoder) ExecutorAddress() common.Address { return e.executor }

func (e *UniswapV4Encoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	feeRaw, err := packing.GetStaticAttribute(swap, "key_lp_fee")
	if err != nil {
		return nil, err
	}
	fee, err := packing.PadToFixedSize(feeRaw, 3)
	if err != nil {
		return nil, err
	}
	tickSpacingRaw, err := packing.GetStaticAttribute(swap, "tick_spacing")
	if err != nil {
		return nil, err
	}
	tickSpacing, err := packing.PadToFixedSize(tickSpacingRaw, 3)
	if err != nil {
		return nil, err
	}

	var hookAddr common.Address
	if raw, ok := swap.Component.Attribute("hooks"); ok {
		hookAddr, err = packing.BytesToAddress(raw)
		if err != nil {
			return nil, err
		}
	}

	hookData := swap.UserData
	if hookAddr == e.angstromHook && e.angstromHook != (common.Address{}) {
		attestations, err := e.angstromFetch(ctx)
		if err != nil {
			return nil, err
		}
		hookData = angstrom.Encode(attestations)
	}
	hookDataLen := make([]byte, 2)
	binary.BigEndian.PutUint16(hookDataLen, uint16(len(hookData)))

	poolParams := make([]byte, 0, 20+3+3+20+2+len(hookData))
	poolParams = append(poolParams, swap.TokenOut.Bytes()...)
	poolParams = append(poolParams, fee...)
	poolParams = append(poolParams, tickSpacing...)
	poolParams = append(poolParams, hookAddr.Bytes()...)
	poolParams = append(poolParams, hookDataLen...)
	poolParams = append(poolParams, hookData...)

	if ectx.GroupTokenIn != swap.TokenIn {
		return poolParams, nil
	}

	zeroToOne := packing.ZeroToOne(swap.TokenIn, swap.TokenOut)
	out := make([]byte, 0, 20+20+1+1+20+len(poolParams))
	out = append(out, ectx.GroupTokenIn.Bytes()...)
	out = append(out, ectx.GroupTokenOut.Bytes()...)
	out = append(out, packing.PackBool(zeroToOne))
	out = append(out, byte(ectx.TransferType))
	out = append(out, ectx.Receiver.Bytes()...)
	out = append(out, poolParams...)
	return out, nil
}
