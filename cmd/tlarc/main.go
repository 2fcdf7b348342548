package main

import (
	"os"

	"github.com/fatih/color"
)

func main() {
	err := Execute()
	if err != nil {
		color.New(color.FgRed).Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
