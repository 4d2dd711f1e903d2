package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cpybuild",
	Short: "Build orchestrator for Python extension modules",
	Long: `cpybuild reads cpybuild.yaml, discovers source files through glob patterns and
drives the external Cython toolchain to turn them into loadable extension modules.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
