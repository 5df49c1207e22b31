package main

import (
	"os"

	"pdbstore/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
