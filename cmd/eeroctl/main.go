// Command eeroctl manages Eero mesh Wi-Fi networks from the terminal.
package main

import (
	"os"

	"github.com/fulviofreitas/eeroctl/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
