package main

import (
	"os"

	"camfleet/src/cli"
)

func main() {
	os.Exit(cli.Execute())
}
