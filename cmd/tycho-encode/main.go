// Command tycho-encode is the CLI entry point for the swap calldata
// compiler: it reads a JSON array of solutions on stdin and writes the
// corresponding EncodedSolutions (or, with --full-calldata, Transactions)
// to stdout. Grounded on a cobra command-tree shape and logrus-based
// reporting.
package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tycho-go/router-encoding/cmd/tycho-encode/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		logrus.WithError(err).Error("tycho-encode failed")
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}
