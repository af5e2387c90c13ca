// Package main provides the sdtemplate command-line client.
//
// sdtemplate validates, publishes, tags and removes templates in a
// Screwdriver template registry.
package main

import (
	"fmt"
	"os"

	"github.com/yaroslav/sdtemplate/cmd/sdtemplate/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
