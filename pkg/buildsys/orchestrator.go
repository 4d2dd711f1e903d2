package buildsys

import (
	"context"
	"os"
	"path/filepath"

	"github.com/aidarkhanov/nanoid"
	"github.com/rotisserie/eris"
	"github.com/schollz/progressbar/v3"
)

// searchPathVar is the interpreter's module search path.
const searchPathVar = "PYTHONPATH"

// Options control a single build run.
type Options struct {
	// ConfigPath points at an alternate config file, ConfigFileName if empty.
	ConfigPath string
	// DryRun only logs the toolchain command without executing anything.
	DryRun bool
	// Toolchain overrides the default python3 toolchain.
	Toolchain *Toolchain
}

func newProgressBar(length int64, desc string) *progressbar.ProgressBar {
	if os.Getenv("CI") == "true" {
		return progressbar.NewOptions64(length, progressbar.OptionSetVisibility(false))
	}

	return progressbar.Default(length, desc)
}

// exportSearchPath prepends the output directory's parent to the
// interpreter's search path so code spawned from this process can import the
// built modules. An entry that is already listed is left alone.
func exportSearchPath(outputDir string) error {
	parent := filepath.Dir(filepath.Clean(outputDir))

	current := os.Getenv(searchPathVar)
	for _, entry := range filepath.SplitList(current) {
		if entry == parent {
			return nil
		}
	}

	updated := parent
	if current != "" {
		updated = parent + string(os.PathListSeparator) + current
	}

	err := os.Setenv(searchPathVar, updated)
	if err != nil {
		return eris.Wrapf(err, "Failed to update %s", searchPathVar)
	}

	return nil
}

func reportInvalid(ctx context.Context, invalid []InvalidModule) {
	if len(invalid) == 0 {
		return
	}

	for _, mod := range invalid {
		log(ctx).Warn().
			Str("path", mod.Source).
			Strs("invalid_tokens", mod.BadTokens).
			Msgf("%s does not map to a valid module name (%s)", mod.Source, mod.Name)
	}

	log(ctx).Warn().
		Msgf("Skipped %d source file(s) with invalid module names", len(invalid))
}

// Run executes one full build pass: load the config, resolve the configured
// patterns, derive module descriptors and hand the whole batch to the
// toolchain in a single invocation. Per-file problems are logged and the run
// continues; environment problems abort with an error.
func Run(ctx context.Context, opts Options) error {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = ConfigFileName
	}

	cfg, err := LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	outputDir := cfg.OutputDir()
	err = os.MkdirAll(outputDir, 0770)
	if err != nil {
		return eris.Wrapf(err, "Failed to create output directory %s", outputDir)
	}

	err = exportSearchPath(outputDir)
	if err != nil {
		return err
	}

	sources, err := ResolveSources(ctx, cfg.Sources)
	if err != nil {
		return err
	}

	if len(sources) > 0 {
		bar := newProgressBar(int64(len(sources)), "Collecting sources")
		for _, src := range sources {
			log(ctx).Debug().
				Str("path", src).
				Msgf("Transpiling %s...", src)
			_ = bar.Add(1)
		}
	}

	extensions, invalid := CollectExtensions(sources)
	if len(extensions) == 0 {
		log(ctx).Info().Msg("No source files found to transpile.")
		reportInvalid(ctx, invalid)
		return nil
	}

	scratchDir := filepath.Join(os.TempDir(), "cpybuild-"+nanoid.New())
	if !opts.DryRun {
		err = os.MkdirAll(scratchDir, 0700)
		if err != nil {
			return eris.Wrapf(err, "Failed to create scratch directory %s", scratchDir)
		}
		defer os.RemoveAll(scratchDir)
	}

	toolchain := opts.Toolchain
	if toolchain == nil {
		toolchain = &Toolchain{}
	}

	compileErr := toolchain.Compile(ctx, extensions, outputDir, scratchDir, opts.DryRun)
	reportInvalid(ctx, invalid)
	if compileErr != nil {
		return compileErr
	}

	log(ctx).Info().
		Str("path", outputDir).
		Msgf("All sources transpiled to C in %s", outputDir)
	return nil
}
