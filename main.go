package main

import (
	"os"

	"github.com/Mazosolution/mazo-parser/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
