package cmd

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cpyproject/cpybuild/pkg"
	"github.com/cpyproject/cpybuild/pkg/buildsys"
)

var packCmd = &cobra.Command{
	Use:   "pack archive_name",
	Short: "Packs the built artifacts into a .tar.xz archive",
	Long: `Pass the name of the archive that should be generated. The contents of the
configured output directory are bundled for distribution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) != 1 {
			return eris.New("Expected 1 argument!")
		}

		cfg, err := buildsys.LoadConfig(buildsys.ConfigFileName)
		if err != nil {
			return err
		}

		outputDir := cfg.OutputDir()
		info, err := os.Stat(outputDir)
		if err != nil {
			return eris.Wrapf(err, "Nothing to pack in %s", outputDir)
		}

		if !info.IsDir() {
			return eris.Errorf("%s is not a directory!", outputDir)
		}

		pkg.PrintTask("Packing " + outputDir)
		err = pkg.PackArchive(args[0], outputDir)
		if err != nil {
			return err
		}

		pkg.PrintSubtask("Wrote " + args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(packCmd)
}
