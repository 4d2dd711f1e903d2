package cmd

import (
	"io/ioutil"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/cpyproject/cpybuild/pkg"
	"github.com/cpyproject/cpybuild/pkg/buildsys"
)

const starterConfig = `# cpybuild configuration
#
# sources lists glob patterns that are resolved in order; ** matches
# directories recursively. output is where the built modules end up
# (the CPYBUILD_LOC environment variable overrides it).
sources:
  - src/**/*.pyx
output: build/
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter " + buildsys.ConfigFileName,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stat(buildsys.ConfigFileName)
		if err == nil {
			return eris.Errorf("%s already exists, refusing to overwrite it", buildsys.ConfigFileName)
		}
		if !eris.Is(err, os.ErrNotExist) {
			return eris.Wrapf(err, "Failed to check %s", buildsys.ConfigFileName)
		}

		err = ioutil.WriteFile(buildsys.ConfigFileName, []byte(starterConfig), 0660)
		if err != nil {
			return eris.Wrapf(err, "Failed to write %s", buildsys.ConfigFileName)
		}

		pkg.PrintSubtask("Wrote " + buildsys.ConfigFileName)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
