// Package main is the entry point for the retro CLI client.
package main

import (
	"github.com/retrohunt/retro-hunter/cmd/retro/cmd"
)

func main() {
	cmd.Execute()
}
