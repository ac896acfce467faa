// tfscope decodes Terraform JSON log streams into normalized records
// and serves timelines, statistics, and exports over them.
package main

import (
	"fmt"
	"os"

	"github.com/roach88/tfscope/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
