// Command jddf compiles JSON Data Definition Format schemas and validates JSON
// or YAML documents against them.
//
// Usage:
//
//	# Check that schemas are well-formed
//	jddf compile user.jddf.json order.jddf.yaml
//
//	# Validate documents
//	jddf validate --schema user.jddf.json alice.json bob.yaml
//
//	# Machine-readable output, stop after the first error of each document
//	jddf validate --schema user.jddf.json --max-errors 1 --format json alice.json
//
//	# Print the JSON Schema equivalent
//	jddf export user.jddf.json
//
// Exit status is 0 when everything is valid, 1 when a document is invalid or
// a schema does not compile, and 2 on usage or I/O errors.
package main

import (
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the CLI and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root := newRootCmd(stdout, stderr)
	root.SetArgs(args)
	return exitCode(root.Execute(), stderr)
}
