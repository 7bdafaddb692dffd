package main

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reoring/jddf"
	"github.com/reoring/jddf/jsonschema"
)

func newExportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export SCHEMA",
		Short: "Print the JSON Schema equivalent of a schema",
		Long: `Compile a schema and print an equivalent JSON Schema (draft-07) document.

Examples:
  jddf export user.jddf.json > user.schema.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readSchema(args[0], jddf.DecodeOptions{})
			if err != nil {
				return fatal(fmt.Errorf("schema %s: %w", args[0], err))
			}
			c, err := jddf.Compile(s)
			if err != nil {
				return invalid(fmt.Errorf("schema %s: %w", args[0], err))
			}
			a.log.Debug("exporting", "file", args[0], "form", c.Root().Form())
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if err := enc.Encode(jsonschema.FromCompiled(c)); err != nil {
				return fatal(err)
			}
			return nil
		},
	}
	return cmd
}
