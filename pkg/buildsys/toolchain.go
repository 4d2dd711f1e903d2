package buildsys

import (
	"context"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// setupScriptName is the build script written into the scratch directory.
const setupScriptName = "cpybuild_setup.py"

// Toolchain drives the external transpiler through the interpreter's
// build-extension step. The zero value uses python3.
type Toolchain struct {
	// Python is the interpreter executable used to run the build script.
	Python string
}

func (tc *Toolchain) python() string {
	if tc.Python == "" {
		return "python3"
	}

	return tc.Python
}

// writeSetupScript renders the one-shot build script for the whole batch.
// The script calls cythonize with language level 3 and annotation disabled
// and runs the build_ext step with the final and intermediate directories.
func writeSetupScript(path string, extensions []Extension, outputDir, scratchDir string) error {
	var buf strings.Builder

	buf.WriteString("from setuptools import Extension, setup\n")
	buf.WriteString("from Cython.Build import cythonize\n\n")
	buf.WriteString("extensions = [\n")
	for _, ext := range extensions {
		fmt.Fprintf(&buf, "    Extension(name=%q, sources=[%q]),\n", ext.Name, filepath.ToSlash(ext.Source))
	}
	buf.WriteString("]\n\n")
	buf.WriteString("setup(\n")
	fmt.Fprintf(&buf, "    script_args=[\"build_ext\", \"--build-lib\", %q, \"--build-temp\", %q],\n",
		filepath.ToSlash(outputDir), filepath.ToSlash(scratchDir))
	buf.WriteString("    ext_modules=cythonize(\n")
	buf.WriteString("        extensions,\n")
	buf.WriteString("        compiler_directives={\"language_level\": 3},\n")
	fmt.Fprintf(&buf, "        build_dir=%q,\n", filepath.ToSlash(scratchDir))
	buf.WriteString("        annotate=False,\n")
	buf.WriteString("    ),\n")
	buf.WriteString(")\n")

	err := ioutil.WriteFile(path, []byte(buf.String()), 0660)
	if err != nil {
		return eris.Wrapf(err, "Failed to write build script %s", path)
	}

	return nil
}

func shellQuote(arg string) string {
	if strings.ContainsAny(arg, " \t$'\"\\*?#") {
		return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}

	return arg
}

// Compile transpiles and builds the given batch in a single toolchain
// invocation, directing artifacts to outputDir and intermediate state to
// scratchDir. With dryRun set, the command is only logged.
func (tc *Toolchain) Compile(ctx context.Context, extensions []Extension, outputDir, scratchDir string, dryRun bool) error {
	script := filepath.Join(scratchDir, setupScriptName)
	line := fmt.Sprintf("%s %s", shellQuote(tc.python()), shellQuote(script))

	parser := syntax.NewParser()
	prog, err := parser.Parse(strings.NewReader(line), "toolchain")
	if err != nil {
		return eris.Wrapf(err, "Failed to parse toolchain command %s", line)
	}

	printer := syntax.NewPrinter(
		syntax.Minify(true),
	)
	strBuffer := strings.Builder{}

	if !dryRun {
		err = writeSetupScript(script, extensions, outputDir, scratchDir)
		if err != nil {
			return err
		}
	}

	runner, err := interp.New(
		interp.Dir("."),
		interp.Env(expand.ListEnviron(os.Environ()...)),
		interp.StdIO(nil, os.Stdout, os.Stderr),
		interp.Params("-e"),
	)
	if err != nil {
		return eris.Wrap(err, "Failed to initialize runner")
	}

	for _, stm := range prog.Stmts {
		strBuffer.Reset()
		printer.Print(&strBuffer, stm)
		log(ctx).Info().
			Bool("command", true).
			Msg(strBuffer.String())

		if dryRun {
			continue
		}

		err = runner.Run(ctx, stm)
		if err != nil {
			return eris.Wrap(err, "Toolchain invocation failed")
		}

		if runner.Exited() {
			return nil
		}
	}

	return nil
}
