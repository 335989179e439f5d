package main

import (
	"os"

	"github.com/heynickdev/pbdev/cmd"
	"github.com/heynickdev/pbdev/internal/console"
	pbderrors "github.com/heynickdev/pbdev/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		console.Error("%v", err)
		os.Exit(pbderrors.ExitCode(err))
	}
}
