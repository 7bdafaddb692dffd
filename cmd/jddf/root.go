package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/reoring/jddf/i18n"
	"github.com/reoring/jddf/internal/logging"
)

const (
	exitOK      = 0
	exitInvalid = 1
	exitFatal   = 2
)

// exitError carries an exit code through cobra's error return.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error { return e.err }

func invalid(err error) error { return &exitError{code: exitInvalid, err: err} }
func fatal(err error) error   { return &exitError{code: exitFatal, err: err} }

// errSilentInvalid reports exit status 1 without printing anything further;
// the command already wrote the findings.
var errSilentInvalid = &exitError{code: exitInvalid}

func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return exitOK
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.err != nil {
			fmt.Fprintln(stderr, "jddf:", ee.err)
		}
		return ee.code
	}
	// flag parsing and argument count errors
	fmt.Fprintln(stderr, "jddf:", err)
	return exitFatal
}

// app holds state shared by subcommands.
type app struct {
	logLevel string
	lang     string
	log      *slog.Logger
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	a := &app{log: logging.NewNop()}

	root := &cobra.Command{
		Use:   "jddf",
		Short: "Compile JDDF schemas and validate documents against them",
		Long: `jddf checks JSON Data Definition Format schemas and validates JSON or
YAML documents against them.

Every validation error is reported as a pair of JSON Pointers: the instance
path to the offending value and the schema path to the keyword that rejected
it.

Files ending in .yaml or .yml are read as YAML, everything else as JSON.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return fatal(err)
			}
			a.log = logging.NewWriter(cmd.ErrOrStderr(), level)
			i18n.SetLanguage(a.lang)
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.lang, "lang", "en", "message language: en, ja")

	root.AddCommand(newCompileCmd(a), newValidateCmd(a), newExportCmd(a))
	root.CompletionOptions.DisableDefaultCmd = true
	return root
}
