package transfer

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-go/router-encoding/types"
)

var (
	native  = common.Address{}
	wrapped = common.HexToAddress("0x000000000000000000000000000000000000AA")
	dai     = common.HexToAddress("0x000000000000000000000000000000000000BB")
	router  = common.HexToAddress("0x000000000000000000000000000000000000CC")
	pool    = common.HexToAddress("0x000000000000000000000000000000000000DD")
)

func group(protocol string, tokenIn, tokenOut common.Address) types.SwapGroup {
	return types.SwapGroup{
		ProtocolSystem: protocol,
		TokenIn:        tokenIn,
		TokenOut:       tokenOut,
		Swaps: []types.Swap{{
			Component: types.ProtocolComponent{ProtocolSystem: protocol, ID: pool.Bytes()},
			TokenIn:   tokenIn,
			TokenOut:  tokenOut,
		}},
	}
}

func TestTransferType_NativeInput(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	tt := p.TransferType(group("uniswap_v2", native, dai), false, false)
	assert.Equal(t, types.TransferNone, tt)
}

func TestTransferType_WrapThenTransfer(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	tt := p.TransferType(group("uniswap_v2", wrapped, dai), true, false)
	assert.Equal(t, types.Transfer, tt)
}

func TestTransferType_InTransferRequiredPullsFromUser(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	tt := p.TransferType(group("uniswap_v2", dai, wrapped), false, false)
	assert.Equal(t, types.TransferFrom, tt)
}

func TestTransferType_PriorOptimizationMeansNoTransfer(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	tt := p.TransferType(group("uniswap_v2", dai, wrapped), false, true)
	assert.Equal(t, types.TransferNone, tt)
}

func TestTransferType_TokenAlreadyInRouterMeansPlainTransfer(t *testing.T) {
	p := NewPlanner(native, wrapped, true, router)
	tt := p.TransferType(group("uniswap_v2", dai, wrapped), false, false)
	assert.Equal(t, types.Transfer, tt)
}

func TestTransferType_NotInTransferRequiredFallsBackToRouter(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	tt := p.TransferType(group("vm:curve", dai, wrapped), false, false)
	assert.Equal(t, types.TransferFrom, tt)
}

func TestReceiver_NoNextGroupReturnsSolutionReceiver(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	receiver, optimized, err := p.Receiver(dai, nil)
	require.NoError(t, err)
	assert.Equal(t, dai, receiver)
	assert.False(t, optimized)
}

func TestReceiver_CallbackConstrainedProtocolFallsBackToRouter(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	next := group("uniswap_v3", dai, wrapped)
	receiver, optimized, err := p.Receiver(dai, &next)
	require.NoError(t, err)
	assert.Equal(t, router, receiver)
	assert.False(t, optimized)
}

func TestReceiver_InTransferRequiredNotCallbackConstrainedOptimizesToNextPool(t *testing.T) {
	p := NewPlanner(native, wrapped, false, router)
	next := group("uniswap_v2", dai, wrapped)
	receiver, optimized, err := p.Receiver(dai, &next)
	require.NoError(t, err)
	assert.Equal(t, pool, receiver)
	assert.True(t, optimized)
}
