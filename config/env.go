package config

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/tycho-go/router-encoding/tychoerr"
)

// EnvConfig holds the process-level configuration read by cmd/tycho-encode:
// RPC access, Angstrom attestation endpoint credentials, and which chain to
// build a TychoRouterEncoder for. Grounded on the teacher's EnvConfig/
// LoadFromEnv shape, generalized from relayer/builder credentials to RPC
// and Angstrom credentials per spec.md §5-§6.
type EnvConfig struct {
	RPCURL                string
	ChainID               int64
	PrivateKey            string
	AngstromAPIURL        string
	AngstromAPIKey        string
	AngstromBlocksInFuture int64
}

// LoadEnv loads a .env file if present (ignored if absent — env vars set by
// the host always win) and binds RPC_URL/CHAIN_ID/PRIVATE_KEY/ANGSTROM_*
// through viper, matching the teacher's env-var-first configuration style.
// Every variable is optional: an unset RPC_URL is returned empty and an
// unset CHAIN_ID as zero.
func LoadEnv() (*EnvConfig, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("ANGSTROM_BLOCKS_IN_FUTURE", 5)

	return &EnvConfig{
		RPCURL:                 v.GetString("RPC_URL"),
		ChainID:                v.GetInt64("CHAIN_ID"),
		PrivateKey:             v.GetString("PRIVATE_KEY"),
		AngstromAPIURL:         v.GetString("ANGSTROM_API_URL"),
		AngstromAPIKey:         v.GetString("ANGSTROM_API_KEY"),
		AngstromBlocksInFuture: v.GetInt64("ANGSTROM_BLOCKS_IN_FUTURE"),
	}, nil
}

// HasSigner reports whether a private key was configured.
func (e *EnvConfig) HasSigner() bool {
	return e.PrivateKey != ""
}

// executorsFile is the on-disk shape of the --executors-file-path JSON
// catalog: protocol_system -> executor address, per chain ID.
type executorsFile map[string]map[string]common.Address

// LoadExecutors reads a JSON file of the form {"1": {"uniswap_v2": "0x.."}}
// and returns the executor catalog for chainID.
func LoadExecutors(path string, chainID int64) (map[string]common.Address, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, tychoerr.WrapFatal(err, "config: failed to read executors file %s", path)
	}
	var parsed executorsFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, tychoerr.WrapFatal(err, "config: failed to parse executors file %s", path)
	}
	byChain, ok := parsed[strconv.FormatInt(chainID, 10)]
	if !ok {
		return nil, tychoerr.InvalidInputf("config: executors file has no entry for chain %d", chainID)
	}
	return byChain, nil
}
