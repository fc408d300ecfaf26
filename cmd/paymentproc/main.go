package main

import (
	"os"

	"github.com/acqtools/paymentproc/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
