package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/aboutkit/aboutkit/internal/cli"
	"github.com/aboutkit/aboutkit/pkg/about"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(about.ExitPanic)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(about.ExitCodeForError(err))
	}
}
