package cli

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:           "tycho-encode",
		Short:         "Compile Tycho swap solutions into router calldata",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().Int64Var(&f.chain, "chain", 0, "chain ID (defaults to CHAIN_ID env var)")
	root.PersistentFlags().StringVar(&f.executorsFilePath, "executors-file-path", "", "path to a JSON executor address catalog")
	root.PersistentFlags().StringVar(&f.routerAddress, "router-address", "", "router contract address (overrides the chain catalog)")
	root.PersistentFlags().StringVar(&f.userTransferType, "user-transfer-type", "transfer_from", "transfer_from | transfer_from_permit2 | none")
	root.PersistentFlags().BoolVar(&f.fullCalldata, "full-calldata", false, "emit Transaction{to,value,data} instead of EncodedSolution")

	root.AddCommand(newRouterCmd(f))
	root.AddCommand(newExecutorCmd(f))
	return root
}

// Execute runs the tycho-encode command tree.
func Execute() error {
	return wrapExit(newRootCmd().Execute())
}
