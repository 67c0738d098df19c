package main

import (
	"os"

	"github.com/cjtool/cj/cmd"
	"github.com/cjtool/cj/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
