package main

import (
	"errors"
	"os"

	"github.com/cdctools/chunkscope/internal/cli"
)

func main() {
	root := cli.NewRoot()
	if err := root.Execute(); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			cli.Logger.Println(exitErr.Error())
			os.Exit(exitErr.Code)
		}
		// A bare error is either cobra rejecting the arguments or flags
		// before RunE ran, or a failure of estimate's --watch loop.
		cli.Logger.Println(err)
		os.Exit(-1)
	}
}
