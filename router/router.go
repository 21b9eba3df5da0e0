// Package router implements the top-level orchestrator from spec.md §4.H:
// TychoRouterEncoder validates a Solution, picks a strategy, optionally
// attaches a Permit2 signature, and can wrap the result into a concrete
// on-chain Transaction. TychoExecutorEncoder is its single-group,
// router-bypassing sibling. Grounded on TychoRouterEncoderBuilder /
// EVMTychoRouterEncoder and EVMTychoExecutorEncoder in
// original_source/src/encoding/evm/tycho_encoder.rs, adapted to a Go
// required-field builder instead of the reference's generic builder trait.
package router

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/grouping"
	"github.com/tycho-go/router-encoding/permit2"
	"github.com/tycho-go/router-encoding/strategy"
	"github.com/tycho-go/router-encoding/swapencoder"
	"github.com/tycho-go/router-encoding/transfer"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
	"github.com/tycho-go/router-encoding/validator"
)

// TychoRouterEncoder turns validated Solutions into EncodedSolutions (and,
// on request, full Transactions) against a single fixed router deployment.
type TychoRouterEncoder struct {
	chainID       *big.Int
	native        common.Address
	wrapped       common.Address
	routerAddress common.Address
	strategy      *strategy.Encoder
	userTransfer  types.UserTransferType
	permitNonce   func() uint64
	signer        permit2.Signer
}

// Config is the required-field builder input for NewTychoRouterEncoder,
// mirroring spec.md §9's description of a builder that validates required
// fields rather than constructing a partially-initialized encoder.
type Config struct {
	ChainID       *big.Int
	Native        common.Address
	Wrapped       common.Address
	RouterAddress common.Address
	Registry      *swapencoder.Registry
	UserTransfer  types.UserTransferType
	// TokenInAlreadyInRouter should be true when the caller's UserTransfer
	// pulls the input token into the router before encode_solutions runs
	// (e.g. a prior transferFrom in the same host transaction).
	TokenInAlreadyInRouter bool
	// Signer is required when UserTransfer == UserTransferFromPermit2.
	Signer permit2.Signer
	// PermitNonce supplies the Permit2 nonce per call; defaults to always
	// returning 0, which is only correct for single-use permits.
	PermitNonce func() uint64
}

// NewTychoRouterEncoder validates cfg and builds an encoder. Missing
// required fields are a Fatal error, matching the reference builder's
// refusal to construct an encoder with an incomplete configuration.
func NewTychoRouterEncoder(cfg Config) (*TychoRouterEncoder, error) {
	if cfg.ChainID == nil {
		return nil, tychoerr.Fatalf("router: ChainID is required")
	}
	if cfg.Registry == nil {
		return nil, tychoerr.Fatalf("router: Registry is required")
	}
	if cfg.RouterAddress == (common.Address{}) {
		return nil, tychoerr.Fatalf("router: RouterAddress is required")
	}
	if cfg.UserTransfer == types.UserTransferFromPermit2 && cfg.Signer == nil {
		return nil, tychoerr.Fatalf("router: Signer is required when UserTransfer is Permit2")
	}

	permitNonce := cfg.PermitNonce
	if permitNonce == nil {
		permitNonce = func() uint64 { return 0 }
	}

	return &TychoRouterEncoder{
		chainID:       cfg.ChainID,
		native:        cfg.Native,
		wrapped:       cfg.Wrapped,
		routerAddress: cfg.RouterAddress,
		userTransfer:  cfg.UserTransfer,
		permitNonce:   permitNonce,
		signer:        cfg.Signer,
		strategy: &strategy.Encoder{
			Registry:               cfg.Registry,
			Native:                 cfg.Native,
			Wrapped:                cfg.Wrapped,
			RouterAddress:          cfg.RouterAddress,
			TokenInAlreadyInRouter: cfg.TokenInAlreadyInRouter,
			Permit2Active:          cfg.UserTransfer == types.UserTransferFromPermit2,
		},
	}, nil
}

// EncodeSolutions validates and encodes each solution in turn, implementing
// spec.md §4.H steps 1-4. It is the recommended path: the caller builds its
// own router call from the returned EncodedSolutions.
func (e *TychoRouterEncoder) EncodeSolutions(ctx context.Context, solutions []types.Solution) ([]types.EncodedSolution, error) {
	out := make([]types.EncodedSolution, 0, len(solutions))
	for _, sol := range solutions {
		encoded, err := e.encodeOne(ctx, sol)
		if err != nil {
			return nil, err
		}
		out = append(out, encoded)
	}
	return out, nil
}

func (e *TychoRouterEncoder) encodeOne(ctx context.Context, sol types.Solution) (types.EncodedSolution, error) {
	if err := validator.ValidateSolution(sol, e.native, e.wrapped); err != nil {
		return types.EncodedSolution{}, err
	}

	kind := strategy.Choose(sol.Swaps)
	encoded, err := e.strategy.EncodeStrategy(ctx, sol, kind)
	if err != nil {
		return types.EncodedSolution{}, err
	}

	if e.userTransfer == types.UserTransferFromPermit2 {
		permit, sig, err := permit2.RequestPermit(ctx, e.signer, sol.GivenToken, e.routerAddress, sol.GivenAmount, e.permitNonce(), e.chainID)
		if err != nil {
			return types.EncodedSolution{}, err
		}
		encoded.Permit = permit
		encoded.Signature = sig
	}

	return encoded, nil
}

// EncodeFullCalldata additionally wraps each encoded solution into a
// concrete Transaction per spec.md §4.H step 6: ABI-encode the router's
// arguments in the function-signature's order, prepend the 4-byte
// selector, and set value to given_amount when the given token is native.
func (e *TychoRouterEncoder) EncodeFullCalldata(ctx context.Context, solutions []types.Solution) ([]types.Transaction, error) {
	encodedSolutions := make([]types.EncodedSolution, 0, len(solutions))
	for _, sol := range solutions {
		encoded, err := e.encodeOne(ctx, sol)
		if err != nil {
			return nil, err
		}
		encodedSolutions = append(encodedSolutions, encoded)
	}

	txs := make([]types.Transaction, 0, len(solutions))
	for i, sol := range solutions {
		data, err := buildCalldata(encodedSolutions[i], sol, e.userTransfer)
		if err != nil {
			return nil, err
		}
		value := big.NewInt(0)
		if sol.GivenToken == e.native {
			value = sol.GivenAmount
		}
		txs = append(txs, types.Transaction{To: e.routerAddress, Value: value, Data: data})
	}
	return txs, nil
}

// TychoExecutorEncoder encodes a single swap group directly against one
// executor, bypassing the router entirely.
type TychoExecutorEncoder struct {
	registry *swapencoder.Registry
	native   common.Address
	wrapped  common.Address
}

func NewTychoExecutorEncoder(registry *swapencoder.Registry, native, wrapped common.Address) (*TychoExecutorEncoder, error) {
	if registry == nil {
		return nil, tychoerr.Fatalf("router: Registry is required")
	}
	return &TychoExecutorEncoder{registry: registry, native: native, wrapped: wrapped}, nil
}

// EncodeExecutorSolution rejects multi-group solutions and encodes the
// single remaining group straight against its executor.
func (e *TychoExecutorEncoder) EncodeExecutorSolution(ctx context.Context, sol types.Solution) (types.EncodedSolution, error) {
	if err := validator.ValidateSolution(sol, e.native, e.wrapped); err != nil {
		return types.EncodedSolution{}, err
	}

	groups := grouping.GroupSwaps(sol.Swaps)
	if len(groups) != 1 {
		return types.EncodedSolution{}, tychoerr.InvalidInputf("executor encoder requires exactly one swap group, got %d", len(groups))
	}
	group := groups[0]

	enc, ok := e.registry.Get(group.ProtocolSystem)
	if !ok {
		return types.EncodedSolution{}, tychoerr.InvalidInputf("executor: no swap encoder registered for protocol %q", group.ProtocolSystem)
	}

	tt := types.TransferNone
	if transfer.InTransferRequired[group.ProtocolSystem] {
		tt = types.Transfer
	}

	ectx := types.EncodingContext{
		Receiver:      sol.Receiver,
		ExactOut:      sol.ExactOut,
		GroupTokenIn:  group.TokenIn,
		GroupTokenOut: group.TokenOut,
		TransferType:  tt,
	}

	var data []byte
	for _, swap := range group.Swaps {
		part, err := enc.EncodeSwap(ctx, swap, ectx)
		if err != nil {
			return types.EncodedSolution{}, err
		}
		data = append(data, part...)
	}

	return types.EncodedSolution{
		InteractingWith: enc.ExecutorAddress(),
		Swaps:           data,
	}, nil
}
