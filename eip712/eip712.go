// Package eip712 implements EIP-712 typed-data hashing, generalized from
// the teacher's Safe-specific SafeTx/CreateProxy hashing into a reusable
// domain/type-tree hasher used here for the Permit2 PermitSingle struct.
package eip712

import (
	"encoding/json"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tycho-go/router-encoding/tychoerr"
)

// Domain is the EIP-712 domain separator. Name, Version, ChainID and Salt
// are omitted from hashing when left empty/nil, mirroring the optional
// fields of EIP712Domain; VerifyingContract is always included.
type Domain struct {
	Name              string
	Version           string
	ChainID           *big.Int
	VerifyingContract common.Address
	Salt              *common.Hash
}

// Type is one field of an EIP-712 struct definition.
type Type struct {
	Name string
	Type string
}

// TypedData is the full EIP-712 payload to hash.
type TypedData struct {
	Types       map[string][]Type
	PrimaryType string
	Domain      Domain
	Message     map[string]interface{}
}

// Hash computes keccak256("\x19\x01" || domainSeparator || hashStruct(message)).
func Hash(data *TypedData) (common.Hash, error) {
	domainSeparator, err := hashDomain(data.Domain)
	if err != nil {
		return common.Hash{}, err
	}

	messageHash, err := hashStruct(data.PrimaryType, data.Message, data.Types)
	if err != nil {
		return common.Hash{}, err
	}

	raw := make([]byte, 0, 2+32+32)
	raw = append(raw, 0x19, 0x01)
	raw = append(raw, domainSeparator[:]...)
	raw = append(raw, messageHash[:]...)
	return crypto.Keccak256Hash(raw), nil
}

func domainFields(d Domain) []Type {
	var fields []Type
	if d.Name != "" {
		fields = append(fields, Type{Name: "name", Type: "string"})
	}
	if d.Version != "" {
		fields = append(fields, Type{Name: "version", Type: "string"})
	}
	if d.ChainID != nil {
		fields = append(fields, Type{Name: "chainId", Type: "uint256"})
	}
	fields = append(fields, Type{Name: "verifyingContract", Type: "address"})
	if d.Salt != nil {
		fields = append(fields, Type{Name: "salt", Type: "bytes32"})
	}
	return fields
}

func domainValues(d Domain) map[string]interface{} {
	values := map[string]interface{}{
		"verifyingContract": d.VerifyingContract.Hex(),
	}
	if d.Name != "" {
		values["name"] = d.Name
	}
	if d.Version != "" {
		values["version"] = d.Version
	}
	if d.ChainID != nil {
		values["chainId"] = d.ChainID.String()
	}
	if d.Salt != nil {
		values["salt"] = d.Salt.Hex()
	}
	return values
}

func hashDomain(domain Domain) (common.Hash, error) {
	fields := domainFields(domain)
	typeHash := hashType("EIP712Domain", fields)

	encoded := append([]byte{}, typeHash[:]...)
	values := domainValues(domain)
	types := map[string][]Type{"EIP712Domain": fields}
	for _, field := range fields {
		v, err := encodeValue(field.Type, values[field.Name], types)
		if err != nil {
			return common.Hash{}, err
		}
		encoded = append(encoded, v...)
	}
	return crypto.Keccak256Hash(encoded), nil
}

func hashStruct(primaryType string, data map[string]interface{}, types map[string][]Type) (common.Hash, error) {
	fields, ok := types[primaryType]
	if !ok {
		return common.Hash{}, tychoerr.Fatalf("eip712 type %q not found", primaryType)
	}

	typeHash := hashType(primaryType, fields)
	encoded := append([]byte{}, typeHash[:]...)

	for _, field := range fields {
		value, ok := data[field.Name]
		if !ok {
			return common.Hash{}, tychoerr.Fatalf("eip712 field %q missing from %q", field.Name, primaryType)
		}
		v, err := encodeValue(field.Type, value, types)
		if err != nil {
			return common.Hash{}, err
		}
		encoded = append(encoded, v...)
	}
	return crypto.Keccak256Hash(encoded), nil
}

func hashType(typeName string, fields []Type) common.Hash {
	var b strings.Builder
	b.WriteString(typeName)
	b.WriteByte('(')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(f.Type)
		b.WriteByte(' ')
		b.WriteString(f.Name)
	}
	b.WriteByte(')')
	return crypto.Keccak256Hash([]byte(b.String()))
}

func encodeValue(fieldType string, value interface{}, types map[string][]Type) ([]byte, error) {
	switch {
	case fieldType == "string":
		s, ok := value.(string)
		if !ok {
			return nil, tychoerr.Fatalf("eip712: expected string, got %T", value)
		}
		h := crypto.Keccak256Hash([]byte(s))
		return h[:], nil

	case fieldType == "bytes":
		b, err := toBytes(value)
		if err != nil {
			return nil, err
		}
		h := crypto.Keccak256Hash(b)
		return h[:], nil

	case strings.HasPrefix(fieldType, "bytes"):
		b, err := toBytes(value)
		if err != nil {
			return nil, err
		}
		padded := make([]byte, 32)
		copy(padded, b)
		return padded, nil

	case fieldType == "address":
		addr, err := toAddress(value)
		if err != nil {
			return nil, err
		}
		padded := make([]byte, 32)
		copy(padded[12:], addr[:])
		return padded, nil

	case strings.HasPrefix(fieldType, "uint") || strings.HasPrefix(fieldType, "int"):
		n, err := toBigInt(value)
		if err != nil {
			return nil, err
		}
		b := n.Bytes()
		if len(b) > 32 {
			return nil, tychoerr.Fatalf("eip712: %s value overflows 32 bytes", fieldType)
		}
		padded := make([]byte, 32)
		copy(padded[32-len(b):], b)
		return padded, nil

	case fieldType == "bool":
		v, ok := value.(bool)
		if !ok {
			return nil, tychoerr.Fatalf("eip712: expected bool, got %T", value)
		}
		padded := make([]byte, 32)
		if v {
			padded[31] = 1
		}
		return padded, nil

	default:
		if _, ok := types[fieldType]; ok {
			nested, err := toMap(value)
			if err != nil {
				return nil, err
			}
			h, err := hashStruct(fieldType, nested, types)
			if err != nil {
				return nil, err
			}
			return h[:], nil
		}
		return nil, tychoerr.Fatalf("eip712: unsupported field type %q", fieldType)
	}
}

func toBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case string:
		b, err := hexutil.Decode(v)
		if err != nil {
			return nil, tychoerr.WrapFatal(err, "eip712: invalid bytes value %q", v)
		}
		return b, nil
	case []byte:
		return v, nil
	default:
		return nil, tychoerr.Fatalf("eip712: expected bytes, got %T", value)
	}
}

func toAddress(value interface{}) (common.Address, error) {
	switch v := value.(type) {
	case string:
		return common.HexToAddress(v), nil
	case common.Address:
		return v, nil
	default:
		return common.Address{}, tychoerr.Fatalf("eip712: expected address, got %T", value)
	}
}

func toBigInt(value interface{}) (*big.Int, error) {
	switch v := value.(type) {
	case string:
		n, ok := new(big.Int).SetString(v, 10)
		if !ok {
			return nil, tychoerr.Fatalf("eip712: invalid integer %q", v)
		}
		return n, nil
	case *big.Int:
		return v, nil
	case uint64:
		return new(big.Int).SetUint64(v), nil
	case int64:
		return big.NewInt(v), nil
	case int:
		return big.NewInt(int64(v)), nil
	default:
		return nil, tychoerr.Fatalf("eip712: expected integer, got %T", value)
	}
}

func toMap(value interface{}) (map[string]interface{}, error) {
	if m, ok := value.(map[string]interface{}); ok {
		return m, nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "eip712: failed to marshal nested struct")
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, tychoerr.WrapFatal(err, "eip712: failed to unmarshal nested struct")
	}
	return m, nil
}
