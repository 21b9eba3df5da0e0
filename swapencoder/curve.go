package swapencoder

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/packing"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// curvePoolTypeByPool and curvePoolTypeByFactory are the deployed-address
// tables the executor's Curve adapter switches on; Curve exposes no
// on-chain way to recover a pool's calling convention, so it is fixed at
// encode time from these tables.
var curvePoolTypeByPool = map[common.Address]byte{
	common.HexToAddress("0xbEbc44782C7dB0a1A60Cb6fe97d0b483032FF1C7"): 1, // TriPool
	common.HexToAddress("0xDC24316b9AE028F1497c275EB9192a3Ea0f67022"): 1, // stETH pool
	common.HexToAddress("0xD51a44d3FaE010294C616388b506AcdA1bfAAE46"): 3, // TriCrypto pool
	common.HexToAddress("0xA5407eAE9Ba41422680e2e00537571bcC53efBfD"): 1, // sUSD pool
	common.HexToAddress("0xDcEF968d416a41Cdac0ED8702fAC8128A64241A2"): 1, // FRAX/USDC pool
}

var curvePoolTypeByFactory = map[common.Address]byte{
	common.HexToAddress("0x6A8cbed756804B16E05E741eDaBd5cB544AE21bf"): 1, // CryptoSwapNG
	common.HexToAddress("0xB9fC157394Af804a3578134A6585C0dc9cc990d4"): 1, // Metapool
	common.HexToAddress("0xF18056Bbd320E96A48e3Fbf8bC061322531aac99"): 2, // CryptoPool
	common.HexToAddress("0x0c0e5f2fF0ff18a3be9b835635039256dC4B4963"): 3, // Tricrypto
	common.HexToAddress("0x98EE851a00abeE0d95D08cF4CA2BdCE32aeaAF7F"): 2, // Twocrypto
	common.HexToAddress("0x4F8846Ae9380B90d2E71D5e3D042dff3E7ebb40d"): 1, // StableSwap
	common.HexToAddress("0x5702BDB1Ec244704E3cBBaAE11a0275aE5b07499"): 3, // Unichain Tricrypto
	common.HexToAddress("0xc9Fe0C63Af9A39402e8a5514f9c43Af0322b665F"): 2, // Unichain Twocrypto
	common.HexToAddress("0x604388Bb1159AFd21eB5191cE22b4DeCdEE2Ae22"): 1, // Unichain Core StableSwap
}

// CurveEncoder encodes a hop through a Curve pool, folding in a pool-type
// lookup and native/wrapped-native token substitution for pools that accept
// ETH directly rather than WETH.
type CurveEncoder struct {
	executor            common.Address
	nativeTokenCurve     common.Address
	nativeToken          common.Address
	wrappedNativeToken   common.Address
	approvalMgr          approvals.Manager
}

// NewCurveEncoder requires config["native_token_address"], the sentinel
// Curve pools use in place of the zero address for native ETH.
func NewCurveEncoder(executor common.Address, config Config, nativeToken, wrappedNativeToken common.Address, approvalMgr approvals.Manager) (*CurveEncoder, error) {
	raw, ok := config.get("native_token_address")
	if !ok {
		return nil, tychoerr.Fatalf("curve: missing native_token_address in config")
	}
	return &CurveEncoder{
		executor:           executor,
		nativeTokenCurve:   common.HexToAddress(raw),
		nativeToken:        nativeToken,
		wrappedNativeToken: wrappedNativeToken,
		approvalMgr:        approvalMgr,
	}, nil
}

func (e *CurveEncoder) ExecutorAddress() common.Address { return e.executor }

func (e *CurveEncoder) normalizeToken(token common.Address, coins []common.Address) common.Address {
	contains := func(a common.Address) bool {
		for _, c := range coins {
			if c == a {
				return true
			}
		}
		return false
	}
	if token == e.nativeTokenCurve && !contains(token) {
		return e.wrappedNativeToken
	}
	if token == e.wrappedNativeToken && !contains(token) {
		return e.nativeTokenCurve
	}
	return token
}

func (e *CurveEncoder) coinIndexes(swap types.Swap, tokenIn, tokenOut common.Address) (byte, byte, error) {
	coinsRaw, err := packing.GetStaticAttribute(swap, "coins")
	if err != nil {
		return 0, 0, err
	}
	var coinHex []string
	if err := json.Unmarshal(coinsRaw, &coinHex); err != nil {
		return 0, 0, tychoerr.WrapFatal(err, "curve: invalid coins static attribute")
	}
	coins := make([]common.Address, len(coinHex))
	for i, h := range coinHex {
		coins[i] = common.HexToAddress(h)
	}

	normIn := e.normalizeToken(tokenIn, coins)
	normOut := e.normalizeToken(tokenOut, coins)

	i, ok := indexOf(coins, normIn)
	if !ok {
		return 0, 0, tychoerr.Fatalf("curve: token in address %s not found in pool coins", normIn.Hex())
	}
	j, ok := indexOf(coins, normOut)
	if !ok {
		return 0, 0, tychoerr.Fatalf("curve: token out address %s not found in pool coins", normOut.Hex())
	}
	return byte(i), byte(j), nil
}

func indexOf(coins []common.Address, token common.Address) (int, bool) {
	for i, c := range coins {
		if c == token {
			return i, true
		}
	}
	return 0, false
}

func (e *CurveEncoder) poolType(pool, factory common.Address) (byte, error) {
	if t, ok := curvePoolTypeByPool[pool]; ok {
		return t, nil
	}
	if t, ok := curvePoolTypeByFactory[factory]; ok {
		return t, nil
	}
	return 0, tychoerr.Fatalf("curve: unsupported factory address %s", factory.Hex())
}

// EncodeSwap packs
// token_in | token_out | pool | pool_type | i | j | approval_needed | transfer_type | receiver.
func (e *CurveEncoder) EncodeSwap(ctx context.Context, swap types.Swap, ectx types.EncodingContext) ([]byte, error) {
	tokenIn := swap.TokenIn
	if tokenIn == e.nativeToken {
		tokenIn = e.nativeTokenCurve
	}
	tokenOut := swap.TokenOut
	if tokenOut == e.nativeToken {
		tokenOut = e.nativeTokenCurve
	}

	pool, err := packing.BytesToAddress(swap.Component.ID)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "curve: invalid pool address")
	}

	var approvalNeeded bool
	if ectx.RouterAddress != nil {
		if tokenIn != e.nativeTokenCurve {
			needed, err := e.approvalMgr.ApprovalNeeded(ctx, tokenIn, *ectx.RouterAddress, pool)
			if err != nil {
				return nil, err
			}
			approvalNeeded = needed
		}
	} else {
		approvalNeeded = true
	}

	factoryRaw, err := packing.GetStaticAttribute(swap, "factory")
	if err != nil {
		return nil, err
	}
	factory := common.HexToAddress(string(factoryRaw))

	poolType, err := e.poolType(pool, factory)
	if err != nil {
		return nil, err
	}

	i, j, err := e.coinIndexes(swap, tokenIn, tokenOut)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 20+20+20+1+1+1+1+1+20)
	out = append(out, tokenIn.Bytes()...)
	out = append(out, tokenOut.Bytes()...)
	out = append(out, pool.Bytes()...)
	out = append(out, poolType, i, j)
	out = append(out, packing.PackBool(approvalNeeded))
	out = append(out, byte(ectx.TransferType))
	out = append(out, ectx.Receiver.Bytes()...)
	return out, nil
}
