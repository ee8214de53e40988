// Command calmerge resolves calendar fields into dates and times.
package main

import (
	"fmt"
	"os"

	"github.com/ThreeTen/threetenbp-sub007/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		// Stdout carries the command's own report; stderr gets the cause.
		fmt.Fprintln(os.Stderr, "calmerge:", err)
	}
	os.Exit(cli.GetExitCode(err))
}
