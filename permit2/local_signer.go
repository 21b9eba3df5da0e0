package permit2

import (
	"context"
	"crypto/ecdsa"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tycho-go/router-encoding/eip712"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// LocalSigner implements Signer with a private key held in process memory.
// Adapted from the teacher's signer.Signer key-loading (NewSigner) and raw
// crypto.Sign call, dropping the Safe multisig packing this codebase has no
// use for. Unlike the teacher's SignEIP712StructHash, which wraps the
// struct hash in an extra EIP-191 personal-sign prefix for its Safe
// relayer's verification path, Permit2 verifies a bare EIP-712 digest — so
// Sign here calls crypto.Sign directly on the hash with no added prefix.
type LocalSigner struct {
	privateKey *ecdsa.PrivateKey
	address    common.Address
}

// NewLocalSigner loads privateKeyHex (with or without a "0x" prefix).
func NewLocalSigner(privateKeyHex string) (*LocalSigner, error) {
	privateKeyHex = strings.TrimPrefix(privateKeyHex, "0x")
	privateKey, err := crypto.HexToECDSA(privateKeyHex)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "permit2: invalid private key")
	}
	publicKeyECDSA, ok := privateKey.Public().(*ecdsa.PublicKey)
	if !ok {
		return nil, tychoerr.Fatalf("permit2: failed to derive public key")
	}
	return &LocalSigner{
		privateKey: privateKey,
		address:    crypto.PubkeyToAddress(*publicKeyECDSA),
	}, nil
}

// Address returns the signer's Ethereum address.
func (s *LocalSigner) Address() common.Address { return s.address }

// SignPermitSingle implements Signer.
func (s *LocalSigner) SignPermitSingle(ctx context.Context, permit types.PermitSingle, domain eip712.Domain) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, tychoerr.WrapRecoverable(err, "permit2: signing canceled")
	}

	hash, err := Hash(permit, domain)
	if err != nil {
		return nil, err
	}

	sig, err := crypto.Sign(hash.Bytes(), s.privateKey)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "permit2: failed to sign permit")
	}
	// crypto.Sign's recovery byte is 0/1; Ethereum's ecrecover convention
	// (and Permit2's on-chain verification) expects 27/28.
	sig[64] += 27
	return sig, nil
}
