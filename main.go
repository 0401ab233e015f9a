package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/velatype/vela/cmd"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "vela [subcommand]",
	Short:        "vela\n a Hindley-Milner type checker for an untyped scripting language",
	Args:         cobra.MinimumNArgs(1),
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(cmd.CheckCmd)
}
