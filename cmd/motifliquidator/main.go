package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Exit codes.
const (
	exitOK      = 0
	exitUsage   = 1
	exitRuntime = 2
)

// usageError marks bad invocations; everything else is a runtime fault.
type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	log.SetFlags(0)
	log.SetOutput(stderr)

	cmd := newRootCmd(stdout, stderr)
	cmd.SetArgs(args)
	c, err := cmd.ExecuteC()
	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, "error:", err)
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprint(stderr, c.UsageString())
		return exitUsage
	}
	return exitRuntime
}
