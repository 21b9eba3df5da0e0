package router

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tycho-go/router-encoding/strategy"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// permitSingleABI mirrors the ((address,uint160,uint48,uint48),address,uint256)
// tuple go-ethereum's abi package packs by matching exported struct field
// names to the tuple's component names.
type permitSingleABI struct {
	Details struct {
		Token      common.Address
		Amount     *big.Int
		Expiration *big.Int
		Nonce      *big.Int
	}
	Spender     common.Address
	SigDeadline *big.Int
}

func toPermitABI(p *types.PermitSingle) permitSingleABI {
	var out permitSingleABI
	if p == nil {
		return out
	}
	out.Details.Token = p.Details.Token
	out.Details.Amount = p.Details.Amount
	out.Details.Expiration = new(big.Int).SetUint64(p.Details.Expiration)
	out.Details.Nonce = new(big.Int).SetUint64(p.Details.Nonce)
	out.Spender = p.Spender
	out.SigDeadline = p.SigDeadline
	return out
}

var permitTupleType = abi.ArgumentMarshaling{
	Name: "permit",
	Type: "tuple",
	Components: []abi.ArgumentMarshaling{
		{Name: "details", Type: "tuple", Components: []abi.ArgumentMarshaling{
			{Name: "token", Type: "address"},
			{Name: "amount", Type: "uint160"},
			{Name: "expiration", Type: "uint48"},
			{Name: "nonce", Type: "uint48"},
		}},
		{Name: "spender", Type: "address"},
		{Name: "sigDeadline", Type: "uint256"},
	},
}

func mustType(t string, comp *abi.ArgumentMarshaling) abi.Type {
	var components []abi.ArgumentMarshaling
	if comp != nil {
		components = comp.Components
	}
	typ, err := abi.NewType(t, "", components)
	if err != nil {
		panic(err)
	}
	return typ
}

func arg(name, t string) abi.Argument {
	return abi.Argument{Name: name, Type: mustType(t, nil)}
}

func permitArg() abi.Argument {
	return abi.Argument{Name: "permit", Type: mustType("tuple", &permitTupleType)}
}

// buildCalldata ABI-encodes the router call's arguments in the order
// dictated by encoded.FunctionSignature (spec.md §6) and prepends the
// 4-byte selector, the first four bytes of crypto.Keccak256 of the signature.
func buildCalldata(encoded types.EncodedSolution, sol types.Solution, userTransfer types.UserTransferType) ([]byte, error) {
	wrap := sol.NativeAction == types.NativeActionWrap
	unwrap := sol.NativeAction == types.NativeActionUnwrap
	transferFromPermitted := userTransfer != types.UserTransferNone

	var args abi.Arguments
	var values []interface{}

	switch encoded.FunctionSignature {
	case strategy.SingleSwapSig, strategy.SequentialSwapSig:
		args = abi.Arguments{
			arg("amountIn", "uint256"), arg("tokenIn", "address"), arg("tokenOut", "address"),
			arg("amountOutMin", "uint256"), arg("wrap", "bool"), arg("unwrap", "bool"),
			arg("receiver", "address"), arg("transferFromPermitted", "bool"), arg("swaps", "bytes"),
		}
		values = []interface{}{
			sol.GivenAmount, sol.GivenToken, sol.CheckedToken,
			sol.CheckedAmount, wrap, unwrap,
			sol.Receiver, transferFromPermitted, encoded.Swaps,
		}
	case strategy.SingleSwapPermit2Sig, strategy.SequentialSwapPermit2Sig:
		args = abi.Arguments{
			arg("amountIn", "uint256"), arg("tokenIn", "address"), arg("tokenOut", "address"),
			arg("amountOutMin", "uint256"), arg("wrap", "bool"), arg("unwrap", "bool"),
			arg("receiver", "address"), permitArg(), arg("signature", "bytes"), arg("swaps", "bytes"),
		}
		values = []interface{}{
			sol.GivenAmount, sol.GivenToken, sol.CheckedToken,
			sol.CheckedAmount, wrap, unwrap,
			sol.Receiver, toPermitABI(encoded.Permit), encoded.Signature, encoded.Swaps,
		}
	case strategy.SplitSwapSig:
		args = abi.Arguments{
			arg("amountIn", "uint256"), arg("tokenIn", "address"), arg("tokenOut", "address"),
			arg("amountOutMin", "uint256"), arg("wrap", "bool"), arg("unwrap", "bool"),
			arg("nTokens", "uint256"), arg("receiver", "address"),
			arg("transferFromPermitted", "bool"), arg("swaps", "bytes"),
		}
		values = []interface{}{
			sol.GivenAmount, sol.GivenToken, sol.CheckedToken,
			sol.CheckedAmount, wrap, unwrap,
			new(big.Int).SetUint64(encoded.NTokens), sol.Receiver,
			transferFromPermitted, encoded.Swaps,
		}
	case strategy.SplitSwapPermit2Sig:
		args = abi.Arguments{
			arg("amountIn", "uint256"), arg("tokenIn", "address"), arg("tokenOut", "address"),
			arg("amountOutMin", "uint256"), arg("wrap", "bool"), arg("unwrap", "bool"),
			arg("nTokens", "uint256"), arg("receiver", "address"),
			permitArg(), arg("signature", "bytes"), arg("swaps", "bytes"),
		}
		values = []interface{}{
			sol.GivenAmount, sol.GivenToken, sol.CheckedToken,
			sol.CheckedAmount, wrap, unwrap,
			new(big.Int).SetUint64(encoded.NTokens), sol.Receiver,
			toPermitABI(encoded.Permit), encoded.Signature, encoded.Swaps,
		}
	default:
		return nil, tychoerr.Fatalf("router: unknown function signature %q", encoded.FunctionSignature)
	}

	packed, err := args.Pack(values...)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "router: failed to ABI-encode %s arguments", encoded.FunctionSignature)
	}

	selector := crypto.Keccak256([]byte(encoded.FunctionSignature))[:4]
	data := make([]byte, 0, 4+len(packed))
	data = append(data, selector...)
	data = append(data, packed...)
	return data, nil
}
