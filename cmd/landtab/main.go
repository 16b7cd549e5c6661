package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "landtab",
		Short: "Tools for tabular land records",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbose, nil)
		},
	}
	rootCmd.PersistentFlags().IntVarP(&verbose, "verbose", "v", 0, "log verbosity")

	rootCmd.AddCommand(newExpandCmd())
	rootCmd.AddCommand(newTractsCmd())
	rootCmd.AddCommand(newFilterCmd())
	rootCmd.AddCommand(newProdcheckCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
