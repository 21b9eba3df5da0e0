package cli

import (
	"math/big"
	"os"

	"github.com/spf13/cobra"

	"github.com/tycho-go/router-encoding/config"
	"github.com/tycho-go/router-encoding/ioschema"
	"github.com/tycho-go/router-encoding/permit2"
	"github.com/tycho-go/router-encoding/router"
	"github.com/tycho-go/router-encoding/types"
)

func newRouterCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tycho-router",
		Short: "Encode solutions against the router (singleSwap/sequentialSwap/splitSwap)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry, chainCfg, err := buildRegistry(ctx, f)
			if err != nil {
				return err
			}
			userTransfer, err := f.parseUserTransfer()
			if err != nil {
				return err
			}

			var signer permit2.Signer
			if userTransfer == types.UserTransferFromPermit2 {
				env, err := config.LoadEnv()
				if err != nil {
					return err
				}
				localSigner, err := permit2.NewLocalSigner(env.PrivateKey)
				if err != nil {
					return err
				}
				signer = localSigner
			}

			encoder, err := router.NewTychoRouterEncoder(router.Config{
				ChainID:       big.NewInt(chainCfg.ChainID),
				Native:        chainCfg.NativeToken,
				Wrapped:       chainCfg.WrappedNativeToken,
				RouterAddress: chainCfg.RouterAddress,
				Registry:      registry,
				UserTransfer:  userTransfer,
				Signer:        signer,
			})
			if err != nil {
				return err
			}

			solutions, err := readSolutions(os.Stdin)
			if err != nil {
				return err
			}

			if f.fullCalldata {
				txs, err := encoder.EncodeFullCalldata(ctx, solutions)
				if err != nil {
					return err
				}
				out, err := ioschema.MarshalTransactions(txs)
				if err != nil {
					return err
				}
				cmd.OutOrStdout().Write(out)
				return nil
			}

			encoded, err := encoder.EncodeSolutions(ctx, solutions)
			if err != nil {
				return err
			}
			out, err := ioschema.MarshalEncodedSolutions(encoded)
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(out)
			return nil
		},
	}
}
