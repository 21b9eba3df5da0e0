// Package types holds the data model shared across the calldata compiler:
// the Solution the caller submits, the per-hop Swap and EncodingContext the
// protocol encoders consume, and the EncodedSolution/Transaction the
// compiler produces. Every value here is owned by its creator and consumed
// immutably — the core never mutates a Solution it is handed.
package types

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// NativeToken is the distinguished all-zero address standing in for the
// chain's native asset (ETH on the reference chain).
var NativeToken = common.Address{}

// ProtocolComponent identifies a venue-specific pool/market and carries its
// raw, encoder-interpreted metadata.
type ProtocolComponent struct {
	// ID is typically a 20-byte pool address but some venues (Uniswap V4,
	// Balancer V2) use longer identifiers such as 32-byte pool keys.
	ID             []byte
	ProtocolSystem string
	// StaticAttributes maps attribute name to raw bytes; interpretation
	// (a fee, a tick spacing, a coin list) is the encoder's responsibility.
	StaticAttributes map[string][]byte
}

// Attribute returns the raw bytes for name, or ok=false if absent.
func (c ProtocolComponent) Attribute(name string) (val []byte, ok bool) {
	val, ok = c.StaticAttributes[name]
	return
}

// Swap is one hop: trade token_in for token_out through Component.
type Swap struct {
	Component ProtocolComponent
	TokenIn   common.Address
	TokenOut  common.Address
	// Split is the fraction in [0,1] of the source token routed through
	// this hop. Zero means "use the remainder".
	Split float64
	// UserData is optional venue-specific payload the caller supplies
	// verbatim (e.g. Uniswap V4 hook data).
	UserData []byte
	// ProtocolState is the opaque RFQ callback handle for indicatively
	// priced protocols (Bebop, Hashflow, Liquorice). Nil for on-chain AMMs.
	ProtocolState RFQState
	// EstimatedAmountIn is an optional hint used only to request RFQ
	// quotes; never part of any packed wire format.
	EstimatedAmountIn *big.Int
}

// RFQState is the capability object a caller supplies for RFQ-priced swaps.
// The core never introspects it beyond calling RequestSignedQuote.
type RFQState interface {
	RequestSignedQuote(params QuoteParams) (*SignedQuote, error)
}

// QuoteParams is handed to an RFQState when a signed quote is needed.
type QuoteParams struct {
	TokenIn           common.Address
	TokenOut          common.Address
	EstimatedAmountIn *big.Int
	Receiver          common.Address
}

// SignedQuote carries the RFQ venue's quote as named raw-byte attributes,
// mirroring ProtocolComponent.StaticAttributes so each RFQ encoder can
// demand its own attribute set without a core-level schema change.
// AmountOut is surfaced separately since Bebop packs it as a standalone
// wire field rather than as one more named attribute.
type SignedQuote struct {
	AmountOut  *big.Int
	Attributes map[string][]byte
}

// Attribute returns the raw bytes for name, or ok=false if absent.
func (q SignedQuote) Attribute(name string) (val []byte, ok bool) {
	val, ok = q.Attributes[name]
	return
}

// NativeAction is an optional wrap/unwrap performed by the router around
// the encoded swap sequence.
type NativeAction int

const (
	NativeActionNone NativeAction = iota
	NativeActionWrap
	NativeActionUnwrap
)

// Solution is the caller-validated swap graph to compile.
type Solution struct {
	// ExactOut must always be false; exact-output routing is a Non-goal.
	ExactOut      bool
	GivenToken    common.Address
	GivenAmount   *big.Int
	CheckedToken  common.Address
	CheckedAmount *big.Int
	Sender        common.Address
	Receiver      common.Address
	Swaps         []Swap
	NativeAction  NativeAction
}

// TransferType selects how tokens reach the pool for a hop. The numeric
// value is part of the wire format and must not be reordered.
type TransferType uint8

const (
	TransferFrom TransferType = 0
	Transfer     TransferType = 1
	TransferNone TransferType = 2
)

// UserTransferType is selected once per encoder instance and governs how
// the router pulls the solution's input token from the end user.
type UserTransferType int

const (
	UserTransferFrom UserTransferType = iota
	UserTransferFromPermit2
	UserTransferNone
)

// EncodingContext is the per-hop input handed to a swap encoder.
type EncodingContext struct {
	Receiver        common.Address
	ExactOut        bool
	RouterAddress   *common.Address
	GroupTokenIn    common.Address
	GroupTokenOut   common.Address
	TransferType    TransferType
	HistoricalTrade bool
}

// SwapGroup is a contiguous run of hops on one venue sharing a grouped-path
// contract call (Uniswap V4, Ekubo).
type SwapGroup struct {
	ProtocolSystem string
	TokenIn        common.Address
	TokenOut       common.Address
	Split          float64
	Swaps          []Swap
}

// PermitDetails is the Permit2 PermitDetails tuple (token, uint160 amount,
// uint48 expiration, uint48 nonce).
type PermitDetails struct {
	Token      common.Address
	Amount     *big.Int
	Expiration uint64
	Nonce      uint64
}

// PermitSingle is the Permit2 PermitSingle tuple.
type PermitSingle struct {
	Details     PermitDetails
	Spender     common.Address
	SigDeadline *big.Int
}

// EncodedSolution is the core's output for one Solution.
type EncodedSolution struct {
	FunctionSignature string
	InteractingWith   common.Address
	// Swaps is the packed, strategy-specific swap payload.
	Swaps     []byte
	Permit    *PermitSingle
	Signature []byte
	NTokens   uint64
}

// Transaction is the concrete, ABI-encoded call a host would submit.
type Transaction struct {
	To    common.Address
	Value *big.Int
	Data  []byte
}
