package main

import (
	"flag"
	"os"
)

// newFlagSet builds a flag.FlagSet that reports errors to the caller
// instead of calling os.Exit, so run can map a parse failure to exit code 2
// (spec.md §6 "User error... fatal; exit code 2") the same way every other
// fatal path in this command does.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}
