// Command molforge is the MolForge command-line client.
package main

import (
	"os"

	"github.com/turtacn/molforge/internal/interfaces/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

//Personal.AI order the ending
