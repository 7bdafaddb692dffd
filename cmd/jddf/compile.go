package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reoring/jddf"
)

func newCompileCmd(a *app) *cobra.Command {
	var allowDup bool
	cmd := &cobra.Command{
		Use:   "compile SCHEMA...",
		Short: "Check that schemas are well-formed",
		Long: `Decode and compile each schema file.

A schema fails when it is not a schema document at all, when a node mixes
keywords of different forms, or when a ref names a missing definition.

Examples:
  jddf compile user.jddf.json
  jddf compile schemas/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := jddf.DecodeOptions{AllowDuplicateKeys: allowDup}
			failed := 0
			for _, name := range args {
				s, err := readSchema(name, opts)
				if err != nil {
					if errors.Is(err, jddf.ErrDecode) || errors.Is(err, jddf.ErrNotSchema) {
						a.log.Debug("schema rejected", "file", name, "error", err)
						fmt.Fprintf(cmd.OutOrStdout(), "%s: %v\n", name, err)
						failed++
						continue
					}
					return fatal(err)
				}
				c, err := jddf.Compile(s)
				if err != nil {
					a.log.Debug("compile failed", "file", name, "error", err)
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s: %v\n", name, compileKind(err), err)
					failed++
					continue
				}
				a.log.Info("compiled", "file", name, "form", c.Root().Form(), "definitions", len(c.DefinitionNames()))
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", name)
			}
			if failed > 0 {
				return errSilentInvalid
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&allowDup, "allow-duplicate-keys", false, "accept JSON objects with duplicate keys (last wins)")
	return cmd
}

func compileKind(err error) string {
	switch {
	case errors.Is(err, jddf.ErrNoSuchDefinition):
		return "no such definition"
	case errors.Is(err, jddf.ErrInvalidForm):
		return "invalid form"
	}
	return "error"
}
