package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"

	"github.com/tycho-go/router-encoding/approvals"
	"github.com/tycho-go/router-encoding/config"
	"github.com/tycho-go/router-encoding/ioschema"
	"github.com/tycho-go/router-encoding/swapencoder"
	"github.com/tycho-go/router-encoding/tychoerr"
	"github.com/tycho-go/router-encoding/types"
)

// flags is the shared set of persistent flags both subcommands read,
// mirroring spec.md §6's named CLI inputs.
type flags struct {
	chain              int64
	executorsFilePath  string
	routerAddress      string
	userTransferType   string
	fullCalldata       bool
}

func (f *flags) parseUserTransfer() (types.UserTransferType, error) {
	switch f.userTransferType {
	case "", "transfer_from":
		return types.UserTransferFrom, nil
	case "transfer_from_permit2":
		return types.UserTransferFromPermit2, nil
	case "none":
		return types.UserTransferNone, nil
	default:
		return types.UserTransferFrom, tychoerr.InvalidInputf("unknown --user-transfer-type %q", f.userTransferType)
	}
}

// buildRegistry loads the chain catalog, overrides it with an
// --executors-file-path if given, dials the RPC client for the allowance
// probe, and constructs the protocol encoder registry.
func buildRegistry(ctx context.Context, f *flags) (*swapencoder.Registry, *config.ChainConfig, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, nil, err
	}

	chainID := f.chain
	if chainID == 0 {
		chainID = env.ChainID
	}

	chainCfg, err := config.GetChainConfig(chainID)
	if err != nil {
		return nil, nil, err
	}
	if f.executorsFilePath != "" {
		executors, err := config.LoadExecutors(f.executorsFilePath, chainID)
		if err != nil {
			return nil, nil, err
		}
		chainCfg.Executors = executors
	}
	if f.routerAddress != "" {
		if !common.IsHexAddress(f.routerAddress) {
			return nil, nil, tychoerr.InvalidInputf("invalid --router-address %q", f.routerAddress)
		}
		chainCfg.RouterAddress = common.HexToAddress(f.routerAddress)
	}
	if err := chainCfg.Validate(); err != nil {
		return nil, nil, err
	}

	var approvalMgr approvals.Manager = approvals.AlwaysNeeded{}
	if env.RPCURL != "" {
		client, err := ethclient.DialContext(ctx, env.RPCURL)
		if err != nil {
			logrus.WithError(err).Warn("failed to dial RPC, falling back to conservative approval checks")
		} else {
			approvalMgr = approvals.NewEthManager(client, logrus.WithField("component", "approvals"))
		}
	}

	registry, err := swapencoder.NewDefaultRegistry(
		swapencoder.ChainParams{ChainID: chainCfg.ChainID, NativeToken: chainCfg.NativeToken, WrappedNativeToken: chainCfg.WrappedNativeToken},
		chainCfg.Executors,
		chainCfg.ProtocolConfig,
		approvalMgr,
	)
	if err != nil {
		return nil, nil, err
	}
	return registry, chainCfg, nil
}

// readSolutions decodes the JSON array of solutions on r (spec.md §6).
func readSolutions(r io.Reader) ([]types.Solution, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, tychoerr.WrapFatal(err, "failed to parse solutions JSON array from stdin")
	}
	out := make([]types.Solution, 0, len(raw))
	for i, item := range raw {
		sol, err := ioschema.DecodeSolution(item)
		if err != nil {
			return nil, tychoerr.WrapFatal(err, "solution %d", i)
		}
		out = append(out, sol)
	}
	return out, nil
}
