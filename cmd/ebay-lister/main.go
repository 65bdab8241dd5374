// Package main is the entry point for the ebay-lister server.
package main

import (
	"os"

	"github.com/donaldgifford/ebay-lister/cmd/ebay-lister/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
