// Package permit2 builds and (optionally, for testing) signs Permit2
// PermitSingle material. Production signing is an external collaborator —
// Signer below is the interface the core consumes (spec.md §6); this
// package also ships a LocalSigner grounded on the teacher's EIP-712
// machinery (signer.TypedData / HashTypedData) for tests and for hosts
// that hold a private key directly instead of delegating to a wallet.
package permit2

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tycho-go/router-encoding/eip712"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// Address is the canonical Permit2 contract address, identical on every
// chain that has it deployed.
var Address = common.HexToAddress("0x000000000022D473030F116dDEE9F6B43aC78BA3")

const domainName = "Permit2"

// expirationWindow and sigDeadlineWindow match spec.md §6 exactly.
const (
	expirationWindow  = 30 * 24 * time.Hour
	sigDeadlineWindow = 30 * time.Minute
)

// Domain returns the EIP-712 domain for Permit2 on chainID.
func Domain(chainID *big.Int) eip712.Domain {
	return eip712.Domain{
		Name:              domainName,
		ChainID:           chainID,
		VerifyingContract: Address,
	}
}

// permitSingleTypes is the EIP-712 type tree for PermitSingle.
var permitSingleTypes = map[string][]eip712.Type{
	"PermitDetails": {
		{Name: "token", Type: "address"},
		{Name: "amount", Type: "uint160"},
		{Name: "expiration", Type: "uint48"},
		{Name: "nonce", Type: "uint48"},
	},
	"PermitSingle": {
		{Name: "details", Type: "PermitDetails"},
		{Name: "spender", Type: "address"},
		{Name: "sigDeadline", Type: "uint256"},
	},
}

// Build constructs a PermitSingle for token/spender/amount with the
// standard 30-day expiration and 30-minute signature deadline measured
// from now.
func Build(token, spender common.Address, amount *big.Int, nonce uint64, now time.Time) types.PermitSingle {
	return types.PermitSingle{
		Details: types.PermitDetails{
			Token:      token,
			Amount:     amount,
			Expiration: uint64(now.Add(expirationWindow).Unix()),
			Nonce:      nonce,
		},
		Spender:     spender,
		SigDeadline: big.NewInt(now.Add(sigDeadlineWindow).Unix()),
	}
}

// Hash computes the EIP-712 signing digest (keccak256 of "\x19\x01" ||
// domain separator || struct hash) for a PermitSingle under domain,
// ready to be signed with crypto.Sign (no further EIP-191 wrapping).
func Hash(permit types.PermitSingle, domain eip712.Domain) (common.Hash, error) {
	message := map[string]interface{}{
		"details": map[string]interface{}{
			"token":      permit.Details.Token.Hex(),
			"amount":     amountString(permit.Details.Amount),
			"expiration": permit.Details.Expiration,
			"nonce":      permit.Details.Nonce,
		},
		"spender":     permit.Spender.Hex(),
		"sigDeadline": permit.SigDeadline.String(),
	}

	typed := &eip712.TypedData{
		Types:       permitSingleTypes,
		PrimaryType: "PermitSingle",
		Domain:      domain,
		Message:     message,
	}
	return eip712.Hash(typed)
}

func amountString(v *big.Int) string {
	if v == nil {
		return "0"
	}
	return v.String()
}

// Signer is the external collaborator the core calls to obtain a signed
// PermitSingle, once per encode_solutions invocation (spec.md §4.H step 4).
// The core never inspects how signing happens — a local key, a hardware
// wallet, or a remote signer may all implement this.
type Signer interface {
	SignPermitSingle(ctx context.Context, permit types.PermitSingle, domain eip712.Domain) ([]byte, error)
}

// RequestPermit builds and signs a PermitSingle in one call, surfacing
// signer cancellation/failure as Recoverable per spec.md §5.
func RequestPermit(ctx context.Context, signer Signer, token, spender common.Address, amount *big.Int, nonce uint64, chainID *big.Int) (*types.PermitSingle, []byte, error) {
	permit := Build(token, spender, amount, nonce, time.Now())
	domain := Domain(chainID)

	sig, err := signer.SignPermitSingle(ctx, permit, domain)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, tychoerr.WrapRecoverable(ctx.Err(), "permit2 signing canceled")
		}
		return nil, nil, tychoerr.WrapRecoverable(err, "permit2 signing failed")
	}
	return &permit, sig, nil
}
