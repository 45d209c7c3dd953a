// Command lvqap solves facility-route assignment problems.
package main

import (
	"os"

	"github.com/katalvlaran/lvqap/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
