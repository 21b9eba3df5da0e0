package cli

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/tycho-go/router-encoding/ioschema"
	"github.com/tycho-go/router-encoding/router"
)

func newExecutorCmd(f *flags) *cobra.Command {
	return &cobra.Command{
		Use:   "tycho-executor",
		Short: "Encode a single-group solution directly against its executor, bypassing the router",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			registry, chainCfg, err := buildRegistry(ctx, f)
			if err != nil {
				return err
			}

			encoder, err := router.NewTychoExecutorEncoder(registry, chainCfg.NativeToken, chainCfg.WrappedNativeToken)
			if err != nil {
				return err
			}

			solutions, err := readSolutions(os.Stdin)
			if err != nil {
				return err
			}

			encoded := make([]ioschema.EncodedSolution, 0, len(solutions))
			for _, sol := range solutions {
				es, err := encoder.EncodeExecutorSolution(ctx, sol)
				if err != nil {
					return err
				}
				encoded = append(encoded, ioschema.EncodeEncodedSolution(es))
			}

			out, err := json.MarshalIndent(encoded, "", "  ")
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(out)
			return nil
		},
	}
}
