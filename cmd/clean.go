package cmd

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cpyproject/cpybuild/pkg"
	"github.com/cpyproject/cpybuild/pkg/buildsys"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the configured output directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := buildsys.LoadConfig(buildsys.ConfigFileName)
		if err != nil {
			return err
		}

		outputDir := cfg.OutputDir()
		pkg.PrintTask("Cleaning " + outputDir)

		err = os.RemoveAll(outputDir)
		if err != nil {
			return eris.Wrapf(err, "Failed to remove %s", outputDir)
		}

		pkg.PrintSubtask("Done")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}
