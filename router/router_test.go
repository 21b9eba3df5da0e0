package router

import (
	"context"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tycho-go/router-encoding/eip712"
	"github.com/tycho-go/router-encoding/permit2"
	"github.com/tycho-go/router-encoding/strategy"
	"github.com/tycho-go/router-encoding/swapencoder"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

var (
	native  = common.Address{}
	wrapped = common.HexToAddress("0x000000000000000000000000000000000000AA")
	dai     = common.HexToAddress("0x000000000000000000000000000000000000BB")
	usdc    = common.HexToAddress("0x000000000000000000000000000000000000CC")
	routerAddr = common.HexToAddress("0x000000000000000000000000000000000000DD")
	pool    = common.HexToAddress("0x000000000000000000000000000000000000E1")
	executor = common.HexToAddress("0x000000000000000000000000000000000000F0")
)

// stubEncoder packs a hop as tokenIn ++ tokenOut, enough to exercise the
// router's own orchestration without depending on a real protocol layout.
type stubEncoder struct{}

func (stubEncoder) EncodeSwap(_ context.Context, swap types.Swap, _ types.EncodingContext) ([]byte, error) {
	return append(append([]byte{}, swap.TokenIn.Bytes()...), swap.TokenOut.Bytes()...), nil
}

func (stubEncoder) ExecutorAddress() common.Address { return executor }

func testRegistry() *swapencoder.Registry {
	reg := swapencoder.NewRegistry()
	reg.Register("uniswap_v2", stubEncoder{})
	return reg
}

func baseSolution() types.Solution {
	return types.Solution{
		GivenToken:    dai,
		GivenAmount:   big.NewInt(100),
		CheckedToken:  usdc,
		CheckedAmount: big.NewInt(90),
		Receiver:      common.HexToAddress("0x00000000000000000000000000000000000001"),
		Swaps: []types.Swap{
			{Component: types.ProtocolComponent{ProtocolSystem: "uniswap_v2", ID: pool.Bytes()}, TokenIn: dai, TokenOut: usdc},
		},
	}
}

func TestNewTychoRouterEncoder_RequiresChainID(t *testing.T) {
	_, err := NewTychoRouterEncoder(Config{Registry: testRegistry(), RouterAddress: routerAddr})
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestNewTychoRouterEncoder_RequiresRegistry(t *testing.T) {
	_, err := NewTychoRouterEncoder(Config{ChainID: big.NewInt(1), RouterAddress: routerAddr})
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestNewTychoRouterEncoder_RequiresRouterAddress(t *testing.T) {
	_, err := NewTychoRouterEncoder(Config{ChainID: big.NewInt(1), Registry: testRegistry()})
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestNewTychoRouterEncoder_Permit2RequiresSigner(t *testing.T) {
	_, err := NewTychoRouterEncoder(Config{
		ChainID: big.NewInt(1), Registry: testRegistry(), RouterAddress: routerAddr,
		UserTransfer: types.UserTransferFromPermit2,
	})
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestEncodeSolutions_EncodesSingleHopSolution(t *testing.T) {
	enc, err := NewTychoRouterEncoder(Config{
		ChainID: big.NewInt(1), Native: native, Wrapped: wrapped,
		RouterAddress: routerAddr, Registry: testRegistry(),
	})
	require.NoError(t, err)

	out, err := enc.EncodeSolutions(context.Background(), []types.Solution{baseSolution()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, strategy.SingleSwapSig, out[0].FunctionSignature)
	assert.Nil(t, out[0].Permit)
}

type fakeSigner struct{ sig []byte }

func (f fakeSigner) SignPermitSingle(_ context.Context, _ types.PermitSingle, _ eip712.Domain) ([]byte, error) {
	return f.sig, nil
}

func TestEncodeSolutions_AttachesPermit2WhenConfigured(t *testing.T) {
	enc, err := NewTychoRouterEncoder(Config{
		ChainID: big.NewInt(1), Native: native, Wrapped: wrapped,
		RouterAddress: routerAddr, Registry: testRegistry(),
		UserTransfer: types.UserTransferFromPermit2,
		Signer:       fakeSigner{sig: []byte{0x01, 0x02}},
	})
	require.NoError(t, err)

	out, err := enc.EncodeSolutions(context.Background(), []types.Solution{baseSolution()})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, strategy.SingleSwapPermit2Sig, out[0].FunctionSignature)
	require.NotNil(t, out[0].Permit)
	assert.Equal(t, dai, out[0].Permit.Details.Token)
	assert.Equal(t, []byte{0x01, 0x02}, out[0].Signature)
}

func TestEncodeFullCalldata_SetsValueForNativeGivenToken(t *testing.T) {
	enc, err := NewTychoRouterEncoder(Config{
		ChainID: big.NewInt(1), Native: native, Wrapped: wrapped,
		RouterAddress: routerAddr, Registry: testRegistry(),
	})
	require.NoError(t, err)

	sol := baseSolution()
	sol.GivenToken = native
	sol.Swaps[0].TokenIn = native

	txs, err := enc.EncodeFullCalldata(context.Background(), []types.Solution{sol})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, routerAddr, txs[0].To)
	assert.Equal(t, sol.GivenAmount, txs[0].Value)
	assert.True(t, len(txs[0].Data) >= 4, "calldata must at least carry a 4-byte selector")
}

func TestEncodeFullCalldata_ZeroValueForERC20GivenToken(t *testing.T) {
	enc, err := NewTychoRouterEncoder(Config{
		ChainID: big.NewInt(1), Native: native, Wrapped: wrapped,
		RouterAddress: routerAddr, Registry: testRegistry(),
	})
	require.NoError(t, err)

	txs, err := enc.EncodeFullCalldata(context.Background(), []types.Solution{baseSolution()})
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, big.NewInt(0), txs[0].Value)
}

func TestNewTychoExecutorEncoder_RequiresRegistry(t *testing.T) {
	_, err := NewTychoExecutorEncoder(nil, native, wrapped)
	require.Error(t, err)
	assert.True(t, tychoerr.Is(err, tychoerr.Fatal))
}

func TestEncodeExecutorSolution_RejectsMultiGroupSolutions(t *testing.T) {
	enc, err := NewTychoExecutorEncoder(testRegistry(), native, wrapped)
	require.NoError(t, err)

	sol := baseSolution()
	sol.Swaps = append(sol.Swaps, types.Swap{
		Component: types.ProtocolComponent{ProtocolSystem: "vm:curve", ID: pool.Bytes()},
		TokenIn:   usdc, TokenOut: dai,
	})

	_, err = enc.EncodeExecutorSolution(context.Background(), sol)
	assert.Error(t, err)
}

func TestEncodeExecutorSolution_InteractsWithExecutor(t *testing.T) {
	enc, err := NewTychoExecutorEncoder(testRegistry(), native, wrapped)
	require.NoError(t, err)

	out, err := enc.EncodeExecutorSolution(context.Background(), baseSolution())
	require.NoError(t, err)
	assert.Equal(t, executor, out.InteractingWith)
}
