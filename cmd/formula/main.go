// formula is the CLI for validating and evaluating table formula fields.
package main

import (
	"os"

	"github.com/gridbase/formula/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
