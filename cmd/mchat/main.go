package main

import (
	"os"

	"github.com/msto63/mChat/cmd/mchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
