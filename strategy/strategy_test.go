package strategy

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-go/router-encoding/swapencoder"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

var (
	native  = common.Address{}
	wrapped = common.HexToAddress("0x000000000000000000000000000000000000AA")
	dai     = common.HexToAddress("0x000000000000000000000000000000000000BB")
	wbtc    = common.HexToAddress("0x000000000000000000000000000000000000BC")
	usdc    = common.HexToAddress("0x000000000000000000000000000000000000CC")
	router  = common.HexToAddress("0x000000000000000000000000000000000000DD")
	poolA   = common.HexToAddress("0x000000000000000000000000000000000000E1")
	poolB   = common.HexToAddress("0x000000000000000000000000000000000000E2")
	executor = common.HexToAddress("0x000000000000000000000000000000000000F0")
)

// stubEncoder packs the hop as tokenIn ++ tokenOut ++ transferType, enough
// to assert on byte-length/framing without depending on any real protocol
// layout.
type stubEncoder struct{}

func (stubEncoder) EncodeSwap(_ context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	out := append(append([]byte{}, swap.TokenIn.Bytes()...), swap.TokenOut.Bytes()...)
	return append(out, byte(ectx.TransferType)), nil
}

func (stubEncoder) ExecutorAddress() common.Address { return executor }

func newTestRegistry(protocols ...string) *swapencoder.Registry {
	reg := swapencoder.NewRegistry()
	for _, p := range protocols {
		reg.Register(p, stubEncoder{})
	}
	return reg
}

func testEncoder(reg *swapencoder.Registry) *Encoder {
	return &Encoder{
		Registry:      reg,
		Native:        native,
		Wrapped:       wrapped,
		RouterAddress: router,
	}
}

func swapWith(protocol string, id common.Address, tokenIn, tokenOut common.Address, split float64) types.Swap {
	return types.Swap{
		Component: types.ProtocolComponent{ProtocolSystem: protocol, ID: id.Bytes()},
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		Split:     split,
	}
}

func TestEncodeSingle_OneGroupProducesExecutorPrefixedBlob(t *testing.T) {
	reg := newTestRegistry("uniswap_v2")
	enc := testEncoder(reg)
	sol := types.Solution{
		GivenToken: dai, GivenAmount: big.NewInt(100),
		CheckedToken: usdc, CheckedAmount: big.NewInt(90),
		Receiver: common.HexToAddress("0x00000000000000000000000000000000000001"),
		Swaps:    []types.Swap{swapWith("uniswap_v2", poolA, dai, usdc, 0)},
	}

	out, err := enc.EncodeStrategy(context.Background(), sol, Single)
	require.NoError(t, err)
	assert.Equal(t, SingleSwapSig, out.FunctionSignature)
	assert.Equal(t, router, out.InteractingWith)
	assert.Equal(t, uint64(0), out.NTokens)
	assert.Equal(t, executor.Bytes(), out.Swaps[:20])
}

func TestEncodeSingle_MoreThanOneGroupIsInvalidInput(t *testing.T) {
	reg := newTestRegistry("vm:curve")
	enc := testEncoder(reg)
	sol := types.Solution{
		GivenToken: dai, CheckedToken: usdc,
		Swaps: []types.Swap{
			swapWith("vm:curve", poolA, dai, wbtc, 0),
			swapWith("vm:curve", poolB, wbtc, usdc, 0),
		},
	}

	_, err := enc.EncodeStrategy(context.Background(), sol, Single)
	assert.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.InvalidInput))
}

func TestEncodeSequential_PLEFramesEachGroup(t *testing.T) {
	reg := newTestRegistry("uniswap_v2")
	enc := testEncoder(reg)
	sol := types.Solution{
		GivenToken: dai, GivenAmount: big.NewInt(100),
		CheckedToken: usdc, CheckedAmount: big.NewInt(1),
		Receiver: common.HexToAddress("0x00000000000000000000000000000000000001"),
		Swaps: []types.Swap{
			swapWith("uniswap_v2", poolA, dai, wbtc, 0),
			swapWith("uniswap_v2", poolB, wbtc, usdc, 0),
		},
	}

	out, err := enc.EncodeStrategy(context.Background(), sol, Sequential)
	require.NoError(t, err)
	assert.Equal(t, SequentialSwapSig, out.FunctionSignature)
	// Two PLE-framed blobs, each 2-byte length prefix + 20(executor) +
	// 41 (tokenIn(20)+tokenOut(20)+transferType(1)) bytes of payload.
	assert.Equal(t, (2+20+41)*2, len(out.Swaps))
}

func TestEncodeSplit_BuildsTokenTableAndNTokens(t *testing.T) {
	reg := newTestRegistry("uniswap_v2")
	enc := testEncoder(reg)
	sol := types.Solution{
		GivenToken: dai, GivenAmount: big.NewInt(100),
		CheckedToken: usdc, CheckedAmount: big.NewInt(1),
		Receiver: common.HexToAddress("0x00000000000000000000000000000000000001"),
		Swaps: []types.Swap{
			swapWith("uniswap_v2", poolA, dai, wbtc, 0.5),
			swapWith("uniswap_v2", poolB, dai, usdc, 0),
		},
	}

	out, err := enc.EncodeStrategy(context.Background(), sol, Split)
	require.NoError(t, err)
	assert.Equal(t, SplitSwapSig, out.FunctionSignature)
	// tokens = [dai, wbtc, usdc] (wbtc is the only intermediary); given !=
	// checked so n_tokens = 3.
	assert.Equal(t, uint64(3), out.NTokens)
}

func TestEncodeSplit_SumAtLeastOneRejected(t *testing.T) {
	reg := newTestRegistry("uniswap_v2")
	enc := testEncoder(reg)
	sol := types.Solution{
		GivenToken: dai, CheckedToken: usdc,
		Swaps: []types.Swap{
			swapWith("uniswap_v2", poolA, dai, usdc, 0.6),
			swapWith("uniswap_v2", poolB, dai, usdc, 0.5),
		},
	}

	_, err := enc.EncodeStrategy(context.Background(), sol, Split)
	assert.Error(t, err)
}

func TestChoose_SelectsExpectedStrategy(t *testing.T) {
	single := []types.Swap{swapWith("vm:curve", poolA, dai, usdc, 0)}
	assert.Equal(t, Single, Choose(single))

	sequential := []types.Swap{
		swapWith("uniswap_v2", poolA, dai, wbtc, 0),
		swapWith("vm:curve", poolB, wbtc, usdc, 0),
	}
	assert.Equal(t, Sequential, Choose(sequential))

	split := []types.Swap{
		swapWith("uniswap_v2", poolA, dai, usdc, 0.5),
		swapWith("uniswap_v2", poolB, dai, usdc, 0),
	}
	assert.Equal(t, Split, Choose(split))
}
