package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/exascience/paraccum/cmd/paraccum/commands"
)

const (
	cmdName = "paraccum"

	shortDesc = "Parallel accumulation demos."
	longDesc  = `Paraccum reduces integer sequences in parallel and exercises a
synchronized FIFO queue.

Small inputs are reduced sequentially; larger inputs are split into one
contiguous chunk per worker.
`
)

func main() {
	cmd := commands.NewRootCmd(cmdName, shortDesc, longDesc)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, strings.TrimLeft(err.Error(), "\n"))
		os.Exit(1)
	}
}
