package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vvka-141/usheader/internal/cli"
	"github.com/vvka-141/usheader/pkg/usheader"
)

func main() {
	// Broken invariants surface as panics; report them with a stack trace.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(usheader.ExitPanic)
		}
	}()

	if os.Getenv("USHEADER_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(usheader.ExitCodeForError(err))
	}
}
