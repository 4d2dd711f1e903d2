package cmd

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cpyproject/cpybuild/pkg/buildsys"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Transpile and compile the configured sources",
	Long: `Reads cpybuild.yaml, resolves the configured glob patterns and hands every
discovered module to the external Cython toolchain in one batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, err := cmd.Flags().GetBool("dry")
		if err != nil {
			return err
		}

		cfgPath, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		python, err := cmd.Flags().GetString("python")
		if err != nil {
			return err
		}

		logger := zerolog.New(NewConsoleWriter())
		ctx := buildsys.WithLogger(context.Background(), &logger)

		err = buildsys.Run(ctx, buildsys.Options{
			ConfigPath: cfgPath,
			DryRun:     dryRun,
			Toolchain:  &buildsys.Toolchain{Python: python},
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("Build failed")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolP("dry", "n", false, "dry run; only print the toolchain commands, don't execute anything")
	buildCmd.Flags().String("config", "", "alternate config file (default "+buildsys.ConfigFileName+")")
	buildCmd.Flags().String("python", "", "interpreter used to drive the build (default python3)")
}
