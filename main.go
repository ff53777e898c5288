package main

import (
	"os"

	"github.com/adrianmrit/yamis-go/cliapp"
)

func main() {
	os.Exit(cliapp.Run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
